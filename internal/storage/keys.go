package storage

import (
	"fmt"
	"mime"
	"strings"
	"unicode/utf8"
)

const exportsRoot = "exports"

// ExportPrefix 返回某个会话所有导出产物的前缀。
func ExportPrefix(sessionID string) string {
	return fmt.Sprintf("%s/%s/", exportsRoot, sessionID)
}

// ExportObjectKey 返回一次导出产物的对象键：exports/<session>/<id>.pdf。
func ExportObjectKey(sessionID, id string) string {
	return ExportPrefix(sessionID) + id + ".pdf"
}

// IsValidExportObjectKey reports whether key is a well-formed export key owned by sessionID.
func IsValidExportObjectKey(sessionID, key string) bool {
	if sessionID == "" || key == "" || !utf8.ValidString(key) {
		return false
	}
	if !strings.HasPrefix(key, ExportPrefix(sessionID)) {
		return false
	}
	if strings.Contains(key, "..") || strings.Contains(key, "\\") || strings.Contains(key, "//") {
		return false
	}
	if len(key) > 200 {
		return false
	}
	return strings.HasSuffix(strings.ToLower(key), ".pdf")
}

// ContentDisposition 构造附件下载头，文件名按 RFC 6266 编码。
func ContentDisposition(fileName string) string {
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": fileName}); v != "" {
		return v
	}
	return `attachment; filename="CV.pdf"`
}
