// 版权所有 2024 AgentFlow Authors. 版权所有。
// 此源代码的使用由 MIT 许可规范,该许可可以是
// 在LICENSE文件中找到。

/*
包 metrics 提供基于 Prometheus 的采样指标采集能力。

# 概述

本包通过 Collector 统一注册和记录 Prometheus 指标，使用 promauto
自动注册机制，避免手动管理 Registry。所有指标按 namespace 隔离。

# 核心类型

  - Collector：指标收集器，实现 sampling.MetricsRecorder。

# 主要能力

  - 调用计数：按 strategy/status 分组（success / invalid_config /
    exhausted / tokenizer_error）。
  - 调用耗时：按 strategy 分组的 Histogram。
  - 片段计数：按 kind（anchor / positive）分组。
  - 锚点重采样计数与文档 token 数分布。
*/
package metrics
