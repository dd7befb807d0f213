package cfgexp_test

import (
	"fmt"
	"time"

	"github.com/lwmacct/260821-go-pkg-paramexp/pkg/cfgexp"
	"github.com/lwmacct/260821-go-pkg-paramexp/pkg/paramexp"
)

// Example_defaultPaths 演示 DefaultPaths 的搜索顺序。
func Example_defaultPaths() {
	// 不指定应用名称时，返回基础路径
	paths := cfgexp.DefaultPaths()
	fmt.Println("基础路径数量:", len(paths))

	// 指定应用名称时，会包含应用专属配置路径
	paths = cfgexp.DefaultPaths("myapp")
	fmt.Println("带应用名路径数量:", len(paths))

	// Output:
	// 基础路径数量: 2
	// 带应用名路径数量: 5
}

// Example_load 演示加载配置与参数展开。
func Example_load() {
	type Config struct {
		Name   string `json:"name"`
		APIKey string `json:"api_key"`
	}

	defaultCfg := Config{
		Name:   "default-app",
		APIKey: "${API_KEY:-no-key}",
	}

	// 配置文件不存在时使用默认值，默认值同样参与展开
	cfg, err := cfgexp.Load(defaultCfg,
		cfgexp.WithConfigPaths("nonexistent.yaml"),
		cfgexp.WithStore(paramexp.MapStore{"API_KEY": "sk-12345"}),
	)
	if err != nil {
		fmt.Println("加载失败:", err)

		return
	}

	fmt.Println("Name:", cfg.Name)
	fmt.Println("APIKey:", cfg.APIKey)

	// Output:
	// Name: default-app
	// APIKey: sk-12345
}

// Example_exampleYAML 演示根据配置结构体生成 YAML 示例。
func Example_exampleYAML() {
	// 定义配置结构体，使用 json 和 desc 标签
	type ServerConfig struct {
		Host string `json:"host" desc:"服务器主机地址"`
		Port int    `json:"port" desc:"服务器端口"`
	}
	type AppConfig struct {
		Name    string        `json:"name"    desc:"应用名称"`
		Debug   bool          `json:"debug"   desc:"是否启用调试模式"`
		Timeout time.Duration `json:"timeout" desc:"超时时间"`
		Server  ServerConfig  `json:"server"  desc:"服务器配置"`
	}

	defaultCfg := AppConfig{
		Name:    "example-app",
		Timeout: 30 * time.Second,
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
	}

	yaml := cfgexp.ExampleYAML(defaultCfg)
	fmt.Println(string(yaml))

	// Output:
	// # 配置示例文件, 复制此文件为 config.yaml 并根据需要修改
	// name: 'example-app' # 应用名称
	// debug: false # 是否启用调试模式
	// timeout: 30s # 超时时间
	//
	// # 服务器配置
	// server:
	//   host: 'localhost' # 服务器主机地址
	//   port: 8080 # 服务器端口
}

// Example_marshalJSON 演示根据配置结构体生成 JSON。
func Example_marshalJSON() {
	type Config struct {
		Name  string `json:"name"`
		Debug bool   `json:"debug"`
	}

	jsonBytes := cfgexp.MarshalJSON(Config{Name: "example-app"})
	fmt.Println(string(jsonBytes))

	// Output:
	// {
	//   "name": "example-app",
	//   "debug": false
	// }
}
