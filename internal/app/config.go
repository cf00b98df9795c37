// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"os"
	"path/filepath"

	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// 删除模式
const (
	// DeleteModeStrict 按数字解析 :id 后删除匹配的笔记
	DeleteModeStrict = "strict"
	// DeleteModeLegacy 保留旧行为：原始文本参数永远不等于数字 ID，删除不生效
	DeleteModeLegacy = "legacy"
)

// AppConfig 应用配置
type AppConfig struct {
	File    string        `yaml:"-"` // 配置文件路径，不序列化
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Notes   NotesConfig   `yaml:"notes"`
	Cors    CorsConfig    `yaml:"cors"`
	Static  StaticConfig  `yaml:"static"`
	Tracer  TracerConfig  `yaml:"tracer"`
	Limiter LimiterConfig `yaml:"limiter"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"info"`
	// File 日志文件路径，空值只输出到 stderr
	File string `yaml:"file"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口，可被 PORT 环境变量和 -p 参数覆盖
	HttpPort string `yaml:"http-port" default:":3001"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址（metrics），空值不启动
	PrivateHttpListen string `yaml:"private-http-listen"`
	// UnknownEndpoint 未匹配的路由是否返回 404 {"error":"unknown endpoint"}
	// false 时交给 gin 默认的 404 处理
	UnknownEndpoint *bool `yaml:"unknown-endpoint" default:"true"`
}

// NotesConfig 笔记配置
type NotesConfig struct {
	// Seed 启动时是否写入三条初始笔记
	Seed *bool `yaml:"seed" default:"true"`
	// DeleteMode 删除模式：strict 或 legacy
	DeleteMode string `yaml:"delete-mode" default:"strict"`
	// MaxBodySize 请求体最大字节数，超出视为空请求体
	MaxBodySize int64 `yaml:"max-body-size" default:"102400"`
	// StatsInterval 定时输出笔记统计的间隔（秒），0 不启动
	StatsInterval int `yaml:"stats-interval"`
}

// CorsConfig 跨域配置
type CorsConfig struct {
	AllowOrigins []string `yaml:"allow-origins" default:"[\"*\"]"`
	AllowMethods []string `yaml:"allow-methods" default:"[\"GET\",\"HEAD\",\"PUT\",\"PATCH\",\"POST\",\"DELETE\"]"`
	AllowHeaders []string `yaml:"allow-headers" default:"[\"Origin\",\"Content-Type\",\"Accept\",\"lang\"]"`
	// MaxAge 预检请求缓存时间（秒），0 表示不发送
	MaxAge int `yaml:"max-age"`
}

// StaticConfig 前端静态资源配置
type StaticConfig struct {
	// Dir 磁盘上的前端目录，空值使用内嵌的前端资源
	Dir string `yaml:"dir"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled *bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称，默认 X-Trace-ID
	Header string `yaml:"header" default:"X-Trace-ID"`
}

// LimiterConfig 接口限流配置，每个路由模板一个令牌桶
type LimiterConfig struct {
	// Enabled 是否启用，默认关闭；超出时返回 429
	Enabled bool `yaml:"enabled"`
	// FillInterval 放入令牌的间隔（毫秒）
	FillInterval int `yaml:"fill-interval" default:"1000"`
	// Capacity 桶容量
	Capacity int64 `yaml:"capacity" default:"100"`
	// Quantum 每次放入的令牌数
	Quantum int64 `yaml:"quantum" default:"100"`
}

// UnknownEndpointEnabled 未匹配路由是否返回结构化 404
func (c ServerConfig) UnknownEndpointEnabled() bool {
	return c.UnknownEndpoint == nil || *c.UnknownEndpoint
}

// SeedEnabled 是否写入初始笔记
func (c NotesConfig) SeedEnabled() bool {
	return c.Seed == nil || *c.Seed
}

// LegacyDelete 是否使用旧的删除行为
func (c NotesConfig) LegacyDelete() bool {
	return c.DeleteMode == DeleteModeLegacy
}

// TracerEnabled 是否启用追踪
func (c TracerConfig) TracerEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// NewDefaultConfig 返回只包含默认值的配置
func NewDefaultConfig() (*AppConfig, error) {
	c := new(AppConfig)
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "set default config failed")
	}
	return c, nil
}

// Validate 检查配置取值
func (c *AppConfig) Validate() error {
	switch c.Notes.DeleteMode {
	case DeleteModeStrict, DeleteModeLegacy:
	default:
		return errors.Errorf("notes.delete-mode must be %q or %q, got %q", DeleteModeStrict, DeleteModeLegacy, c.Notes.DeleteMode)
	}
	if c.Notes.MaxBodySize <= 0 {
		return errors.Errorf("notes.max-body-size must be positive, got %d", c.Notes.MaxBodySize)
	}
	if c.Notes.StatsInterval < 0 {
		return errors.Errorf("notes.stats-interval must not be negative, got %d", c.Notes.StatsInterval)
	}
	if c.Limiter.Enabled && (c.Limiter.FillInterval <= 0 || c.Limiter.Capacity <= 0 || c.Limiter.Quantum <= 0) {
		return errors.New("limiter.fill-interval, limiter.capacity and limiter.quantum must be positive")
	}
	return nil
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	c, err := NewDefaultConfig()
	if err != nil {
		return nil, realpath, err
	}
	c.File = realpath

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	err = yaml.Unmarshal(file, c)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "parse config file failed")
	}

	// 再次设置默认值，以填充 YAML 中存在但值为空的字段
	// defaults.Set 只有在字段为该类型的零值时才会填充，所以默认为 true 的开关使用 *bool
	if err := defaults.Set(c); err != nil {
		return nil, realpath, errors.Wrap(err, "re-set default config failed")
	}

	if err := c.Validate(); err != nil {
		return nil, realpath, errors.Wrap(err, "invalid config")
	}

	return c, realpath, nil
}

// Save 保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	err = os.WriteFile(c.File, data, 0644)
	if err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}
