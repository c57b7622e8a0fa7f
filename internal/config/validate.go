package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// エラーにはYAMLのキー名を使う
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("notblank", validators.NotBlank)
	})
	return validate
}

// MissingKeys は空の必須キーをフィールドの宣言順で返す
func MissingKeys(cfg any) []string {
	err := getValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	keys := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		keys = append(keys, fe.Field())
	}
	return keys
}

// FirstMissingKey は最初に見つかった空の必須キーを返す。問題がなければ空文字
func FirstMissingKey(cfg any) string {
	keys := MissingKeys(cfg)
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

// NormalizeBaseURLs はbase_urlsの値（文字列または文字列のリスト）をリストに変換する
func NormalizeBaseURLs(v any) ([]string, error) {
	switch val := v.(type) {
	case string:
		if isBlank(val) {
			return nil, errors.New("空の文字列は指定できません")
		}
		return []string{strings.TrimRight(val, "/")}, nil
	case []string:
		return normalizeURLList(val)
	case []any:
		urls := make([]string, 0, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%d番目の要素が文字列ではありません: %v", i+1, item)
			}
			urls = append(urls, s)
		}
		return normalizeURLList(urls)
	case nil:
		return nil, errors.New("値がありません")
	default:
		return nil, fmt.Errorf("文字列または文字列のリストを指定してください: %T", v)
	}
}

func normalizeURLList(list []string) ([]string, error) {
	if len(list) == 0 {
		return nil, errors.New("空のリストは指定できません")
	}
	urls := make([]string, 0, len(list))
	for i, s := range list {
		if isBlank(s) {
			return nil, fmt.Errorf("%d番目の要素が空です", i+1)
		}
		urls = append(urls, strings.TrimRight(s, "/"))
	}
	return urls, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
