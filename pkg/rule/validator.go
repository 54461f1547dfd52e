// Package rule 提供结构体和字段验证功能的封装，基于 go-playground/validator 实现，
// 并注册学校领域的自定义规则（突尼斯邮编、电话格式）.
package rule

import (
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	inst *validator.Validate
	once sync.Once
)

var (
	// postalCodeRe 突尼斯邮编：恰好 4 位数字.
	postalCodeRe = regexp.MustCompile(`^\d{4}$`)
	// phoneRe 突尼斯国际电话格式：+216 XX XXX XXX(X)，空格可省略.
	phoneRe = regexp.MustCompile(`^\+216\s?\d{2}\s?\d{3}\s?\d{3,4}$`)
)

// initValidator 尝试复用 gin 的 validator 引擎；若不可用则新建.
func initValidator() {
	if engine := binding.Validator.Engine(); engine != nil {
		if v, ok := engine.(*validator.Validate); ok {
			inst = v
			registerDomainRules(inst)

			return
		}
	}

	inst = validator.New()
	registerDomainRules(inst)
}

// registerDomainRules 注册领域规则，binding 标签和 rule 包共用同一个引擎.
func registerDomainRules(v *validator.Validate) {
	_ = v.RegisterValidation("tn_postal_code", func(fl validator.FieldLevel) bool {
		return postalCodeRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("tn_phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("trimmed_min_3", func(fl validator.FieldLevel) bool {
		return len(strings.TrimSpace(fl.Field().String())) >= 3
	})
}

// lazyInit 初始化全局 validator（幂等）.
func lazyInit() {
	once.Do(initValidator)
}

var (
	cfgInst *validator.Validate
	cfgOnce sync.Once
)

// ConfigEngine 返回配置专用的 validator，规则挂在 rule 标签上.
// 与 gin 共享的请求校验引擎相互独立，互不影响标签名.
func ConfigEngine() *validator.Validate {
	cfgOnce.Do(func() {
		cfgInst = validator.New()
		cfgInst.SetTagName("rule")
		registerDomainRules(cfgInst)
	})

	return cfgInst
}

// ValidateConfig 按 rule 标签校验配置结构体.
func ValidateConfig(s any) error {
	return ConfigEngine().Struct(s)
}

// Engine 返回全局 *validator.Validate，若未初始化则先初始化.
func Engine() *validator.Validate {
	lazyInit()

	return inst
}

// ValidateStruct 对结构体执行完整校验.
func ValidateStruct(s any) error {
	lazyInit()

	return inst.Struct(s)
}

// ValidateVar 按规则对单个变量校验，例如: ValidateVar("4000", "required,tn_postal_code").
func ValidateVar(field any, tag string) error {
	lazyInit()

	return inst.Var(field, tag)
}

// FieldErrors 把 validator 错误展开为字段名到可读信息的映射，便于 API 输出.
func FieldErrors(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[strings.ToLower(fe.Field())] = fe.Tag()
	}

	return out
}
