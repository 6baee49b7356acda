// Package lib 包含基础设施工具库
//
// 本目录只放与大厅组件无关的通用工具：
//
//   - log: 基于 slog 的日志封装（组件 logger、分级配置）
//
// pkg/ 下另有 interfaces/（覆盖网络与会话接口）和 types/（公共类型）。
package lib
