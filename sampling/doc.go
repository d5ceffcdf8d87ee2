// Copyright 2025-2026 AgentFlow Authors. All rights reserved.
// Use of this source code is governed by the project license.

/*
# 概述

Package sampling 为对比式表示学习构造锚点/正样本文本片段对。

给定一篇文档，Sampler 先用可插拔的分词器把文本切成 token 序列，
再在长度区间 [MinSpanLen, MaxSpanLen] 内均匀抽取 NumAnchors 个锚点片段，
并为每个锚点独立抽取 NumPositives 个满足采样策略的正样本片段。

# 核心接口/类型

  - Sampler — 锚点/正样本采样器（函数式选项配置）
  - Request — 单次采样请求（数量、长度区间、策略）
  - Strategy — 采样策略：subsuming（包含于锚点）、adjacent（与锚点不相交）、none（无约束）
  - Span — token 下标上的半开区间 [Start, End)
  - Result — 采样结果，正样本按锚点分组：Positives[i*P:(i+1)*P] 属于锚点 i
  - RandSource — 随机源接口，*math/rand.Rand 即满足
  - MetricsRecorder — 指标记录接口，由 internal/metrics.Collector 实现

# 主要能力

  - 精确均匀采样：按长度枚举所有合法片段，一次整数抽样即可定位，无需拒绝采样；
    adjacent 策略下锚点只在两侧至少一侧留得下正样本的候选中抽取
  - 配置前置校验：长度区间、文档下限、max_span_len 与文档长度、策略可行性，
    在任何抽样之前返回 ErrInvalidConfig，不产生部分结果
  - 兜底上限：没有可行锚点候选或 MaxAttempts 次内抽不到时返回
    ErrInvalidConfig（包装 ErrSamplingExhausted）；可行请求不会触发
  - 多文档并发采样：SampleDocuments 基于 errgroup，每个文档使用独立派生的随机源，
    固定种子下结果可复现，并为每个文档创建 OpenTelemetry span
  - 工厂函数：NewSamplerFromConfig / RequestFromConfig 从全局配置创建

# 并发

单个 Sampler 持有自己的随机源，非并发安全；需要并发时为每个调用方创建
独立的 Sampler，或使用 SampleDocuments。
*/
package sampling
