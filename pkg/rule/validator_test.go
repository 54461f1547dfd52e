package rule_test

import (
	"testing"

	"github.com/yeisme/ecolevault/pkg/rule"
)

// TestEngine 测试 Engine 函数返回非 nil 实例.
func TestEngine(t *testing.T) {
	engine := rule.Engine()
	if engine == nil {
		t.Error("Engine() returned nil")
	}
}

// TestPostalCodeRule 突尼斯邮编：恰好 4 位数字.
func TestPostalCodeRule(t *testing.T) {
	valid := []string{"4000", "1002", "0000"}
	for _, v := range valid {
		if err := rule.ValidateVar(v, "tn_postal_code"); err != nil {
			t.Errorf("expected %q to be a valid postal code, got %v", v, err)
		}
	}

	invalid := []string{"400", "40000", "40a0", "", "4000 "}
	for _, v := range invalid {
		if err := rule.ValidateVar(v, "tn_postal_code"); err == nil {
			t.Errorf("expected %q to be rejected", v)
		}
	}
}

// TestPhoneRule 突尼斯国际电话格式：+216 XX XXX XXX(X)，空格可省略.
func TestPhoneRule(t *testing.T) {
	valid := []string{
		"+216 73 123 456",
		"+216 71 456 7890",
		"+21673123456",
		"+216 73123 456",
	}
	for _, v := range valid {
		if err := rule.ValidateVar(v, "tn_phone"); err != nil {
			t.Errorf("expected %q to be a valid phone, got %v", v, err)
		}
	}

	invalid := []string{
		"73 123 456",
		"+33 73 123 456",
		"+216 7 123 456",
		"+216 73 123 45",
		"",
	}
	for _, v := range invalid {
		if err := rule.ValidateVar(v, "tn_phone"); err == nil {
			t.Errorf("expected %q to be rejected", v)
		}
	}
}

// TestTrimmedMinRule 名称去除首尾空白后至少 3 字符.
func TestTrimmedMinRule(t *testing.T) {
	if err := rule.ValidateVar("Ecole Nationale", "trimmed_min_3"); err != nil {
		t.Errorf("expected valid name, got %v", err)
	}

	if err := rule.ValidateVar("  ab  ", "trimmed_min_3"); err == nil {
		t.Error("expected short trimmed name to be rejected")
	}

	if err := rule.ValidateVar("   ", "trimmed_min_3"); err == nil {
		t.Error("expected blank name to be rejected")
	}
}

// TestValidateConfig 配置校验走独立引擎，规则挂在 rule 标签上.
func TestValidateConfig(t *testing.T) {
	type serverSection struct {
		Port    int `rule:"min=1,max=65535"`
		Timeout int `rule:"min=1,max=300"`
	}

	if err := rule.ValidateConfig(serverSection{Port: 8080, Timeout: 30}); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	if err := rule.ValidateConfig(serverSection{Port: 0, Timeout: 30}); err == nil {
		t.Error("expected port 0 to be rejected")
	}
}

// TestValidateStruct 结构体级校验走同一个引擎.
func TestValidateStruct(t *testing.T) {
	// 复用 gin 的引擎时结构体规则挂在 binding 标签上
	type ecoleForm struct {
		PostalCode string `binding:"tn_postal_code"`
		Phone      string `binding:"tn_phone"`
	}

	valid := ecoleForm{PostalCode: "4000", Phone: "+216 73 123 456"}
	if err := rule.ValidateStruct(valid); err != nil {
		t.Errorf("expected valid struct, got %v", err)
	}

	bad := ecoleForm{PostalCode: "40", Phone: "nope"}

	err := rule.ValidateStruct(bad)
	if err == nil {
		t.Fatal("expected struct validation to fail")
	}

	fields := rule.FieldErrors(err)
	if len(fields) != 2 {
		t.Errorf("expected 2 field errors, got %v", fields)
	}
}
