package view

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// Flash 一次性提示，redirect 后展示一次即清除
type Flash struct {
	Kind    string // "success" / "error"
	Message string
}

func setFlash(c *gin.Context, kind, msg string) {
	v := url.QueryEscape(kind + "|" + msg)
	c.SetCookie(flashCookie, v, 60, "/", "", false, true)
}

func takeFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	s, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	kind, msg, ok := strings.Cut(s, "|")
	if !ok {
		return nil
	}
	return &Flash{Kind: kind, Message: msg}
}
