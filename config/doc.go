// Package config 提供 spanpair 的配置管理功能。
//
// 包含默认值、YAML 文件加载与环境变量覆盖，
// 以及采样、分词器、日志和指标配置的校验。
package config
