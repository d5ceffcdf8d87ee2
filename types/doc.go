// Copyright (c) AgentFlow Authors.
// Licensed under the MIT License.

/*
Package types 提供 spanpair 的全局共享类型定义。

# 概述

types 是最底层的公共包，不依赖任何内部包，为 sampling、tokenizer、
config 等上层模块提供统一的错误契约，以避免循环依赖。

# 核心类型

  - Error / ErrorCode — 结构化错误体系，含错误码、消息与底层原因
  - ErrInvalidConfig / ErrSamplingExhausted — 采样配置与重采样耗尽错误码
  - ErrTokenizerError / ErrTokenizerNotFound — 分词器错误码

# 主要能力

  - errors.Is 按错误码匹配（Error.Is），便于与哨兵错误比较
  - 错误工具链：GetErrorCode / IsCode
*/
package types
