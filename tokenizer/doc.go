// Package tokenizer 提供可插拔的分词能力，将文本切分为有序 token 序列，
// 并把 token 子序列重新拼接为文本。
//
// 内置空白分词、正则词/标点分词与基于 tiktoken 的 BPE 分词，
// 以及按名称注册和查找分词器的全局注册表。
package tokenizer
