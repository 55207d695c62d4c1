package unit

import "context"

// ctxKey 用于在 context 中存储单元 token 的私有 key 类型
type ctxKey struct{}

// WithToken 将单元 token 绑定到 context
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKey{}, token)
}

// TokenFromContext 从 context 中读取单元 token
//
// 如果 context 中不存在 token，返回空字符串。
func TokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v := ctx.Value(ctxKey{}); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
