package service

import "go-blog-backend/internal/core/session"

// CanMutate 资源级权限的唯一判定：作者本人或 ADMIN。
// REST 与页面两条链路都走这里，不在各自控制器里重复。
func CanMutate(p session.Principal, authorEmail string) bool {
	return p.Email == authorEmail || p.IsAdmin()
}
