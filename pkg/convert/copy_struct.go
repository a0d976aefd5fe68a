// Package convert 提供结构体间的通用拷贝与转换
package convert

import (
	"github.com/bytedance/sonic"
	"github.com/jinzhu/copier"
)

// StructAssign 把 src 与 dst 同名字段的值复制到 dst 中
// dst 目标结构体指针，src 源结构体
func StructAssign(src any, dst any) any {
	copier.Copy(dst, src)
	return dst
}

// StructToMap 结构体转 map
// data 需要以引用传入，承接转换结果
func StructToMap(param any, data map[string]interface{}) error {
	str, err := sonic.Marshal(param)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(str, &data)
}
