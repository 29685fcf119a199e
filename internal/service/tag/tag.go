// Package tag 根据文件名为学习资料生成主题标签
package tag

import (
	"sort"
	"strings"
)

// FallbackLabel 没有任何规则命中时的兜底标签
const FallbackLabel = "General Study Material"

// rule 子串匹配规则：任意一个子串出现在小写文件名中即命中
type rule struct {
	substrings []string
	labels     []string
}

// 规则表与旧版数据保持一致，不要改动标签文案。
// 注意 "c" 规则会命中几乎所有含字母 c 的文件名（如 lecture.pdf），
// 这是沿用的历史行为。
var rules = []rule{
	{[]string{"python"}, []string{"Python", "Programming"}},
	{[]string{"c"}, []string{"C Language", "Coding"}},
	{[]string{"dsa", "data"}, []string{"Data Structures", "Algorithms"}},
	{[]string{"sql", "db"}, []string{"SQL", "Database"}},
	{[]string{"ai", "ml"}, []string{"AI", "Machine Learning"}},
	{[]string{"cloud"}, []string{"Cloud", "AWS"}},
	{[]string{"network"}, []string{"Networking"}},
	{[]string{"java"}, []string{"Java", "OOP"}},
	{[]string{"os"}, []string{"Operating System"}},
}

// For 返回文件名对应的标签集合
// 纯函数：所有命中规则的标签取并集，无命中时返回兜底标签，
// 结果排序后返回，永不为空
func For(filename string) []string {
	name := strings.ToLower(filename)

	set := make(map[string]struct{})
	for _, r := range rules {
		for _, sub := range r.substrings {
			if strings.Contains(name, sub) {
				for _, label := range r.labels {
					set[label] = struct{}{}
				}
				break
			}
		}
	}

	if len(set) == 0 {
		return []string{FallbackLabel}
	}

	tags := make([]string, 0, len(set))
	for label := range set {
		tags = append(tags, label)
	}
	sort.Strings(tags)
	return tags
}
