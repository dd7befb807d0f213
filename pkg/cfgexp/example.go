package cfgexp

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// ExampleYAML 根据配置结构体生成带注释的 YAML 示例。
//
// 字段注释取自 desc 标签，key 取自 json 标签；嵌套结构体以
// 段落形式输出，段首为结构体自身的 desc 注释。
//
// 示例：
//
//	yaml := cfgexp.ExampleYAML(defaultConfig)
//	os.WriteFile("config.example.yaml", yaml, 0644)
func ExampleYAML(cfg any) []byte {
	var buf strings.Builder
	buf.WriteString("# 配置示例文件, 复制此文件为 config.yaml 并根据需要修改\n")
	writeExampleFields(&buf, reflect.ValueOf(cfg), 0)

	return []byte(buf.String())
}

// MarshalJSON 将配置结构体序列化为缩进的 JSON。
//
// 序列化失败时返回 nil（配置结构体按约定只含可序列化字段）。
func MarshalJSON(cfg any) []byte {
	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil
	}

	return out
}

// writeExampleFields 按字段顺序渲染一层结构体。
func writeExampleFields(buf *strings.Builder, val reflect.Value, depth int) {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return
	}

	indent := strings.Repeat("  ", depth)
	typ := val.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		if field.PkgPath != "" {
			continue
		}

		key := configTagName(field)
		if key == "" {
			continue
		}
		desc := field.Tag.Get("desc")

		if isStructType(field.Type) {
			// 嵌套结构体：空行分段，desc 作为段首注释
			buf.WriteString("\n")
			if desc != "" {
				buf.WriteString(indent + "# " + desc + "\n")
			}
			buf.WriteString(indent + key + ":\n")
			writeExampleFields(buf, val.Field(i), depth+1)

			continue
		}

		line := indent + key + ": " + exampleValue(val.Field(i), field.Type)
		if desc != "" {
			line += " # " + desc
		}
		buf.WriteString(line + "\n")
	}
}

// exampleValue 渲染标量字段值：字符串加单引号，时长用其字符串形式。
func exampleValue(val reflect.Value, typ reflect.Type) string {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return "null"
		}
		val = val.Elem()
		typ = typ.Elem()
	}

	if typ == durationType {
		return val.Interface().(time.Duration).String()
	}

	switch val.Kind() {
	case reflect.String:
		return "'" + val.String() + "'"
	default:
		return fmt.Sprintf("%v", val.Interface())
	}
}
