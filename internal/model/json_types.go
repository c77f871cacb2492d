package model

import (
	"database/sql/driver"
	"errors"
	"sort"

	"github.com/goccy/go-json"
)

// StringList 以 JSON 数组存储的字符串列表
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringList) Scan(value interface{}) error {
	raw, err := jsonBytes(value)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		*s = StringList{}
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return err
	}
	*s = list
	return nil
}

func (s StringList) Contains(v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

// Without 返回去掉 v 之后的新列表
func (s StringList) Without(v string) StringList {
	res := make(StringList, 0, len(s))
	for _, item := range s {
		if item != v {
			res = append(res, item)
		}
	}
	return res
}

// ClaimSet 自定义声明，值为 true 的键即为拥有的角色
type ClaimSet map[string]bool

func (c ClaimSet) Value() (driver.Value, error) {
	if c == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]bool(c))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *ClaimSet) Scan(value interface{}) error {
	raw, err := jsonBytes(value)
	if err != nil {
		return err
	}
	set := ClaimSet{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &set); err != nil {
			return err
		}
	}
	*c = set
	return nil
}

// Roles 返回按字典序排列的生效角色
func (c ClaimSet) Roles() []string {
	roles := make([]string, 0, len(c))
	for k, v := range c {
		if v {
			roles = append(roles, k)
		}
	}
	sort.Strings(roles)
	return roles
}

func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("unsupported json column type")
	}
}
