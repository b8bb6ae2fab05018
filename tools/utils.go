package tools

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

const (
	PcdExtension = ".pcd"
)

func FmtJSONString(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "marshal data fail"
	}
	return string(data)
}

func IsPcdFile(name string) bool {
	return strings.ToLower(filepath.Ext(name)) == PcdExtension
}
