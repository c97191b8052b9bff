package errx

import (
	"errors"
	"fmt"
	"testing"
)

func TestIs_按错误码判断语义(t *testing.T) {
	base := NewBiz("TARGET_NOT_ELIGIBLE", "目标不可用")
	derived := base.WithData("city_id", 3).WithCause(fmt.Errorf("boom"))

	if !errors.Is(derived, base) {
		t.Fatalf("期望派生错误与哨兵错误同码匹配")
	}
	if errors.Is(derived, NewBiz("OTHER", "")) {
		t.Fatalf("不同错误码不应匹配")
	}
}

func TestWithData_不修改哨兵错误(t *testing.T) {
	sentinel := NewBiz("CONFIG_INVALID", "配置非法")
	derived := sentinel.WithData("field", "reserve_percent")

	if sentinel.Data() != nil {
		t.Fatalf("哨兵错误不应被写入 data: %v", sentinel.Data())
	}
	if derived.Data()["field"] != "reserve_percent" {
		t.Fatalf("派生错误应携带 data, got=%v", derived.Data())
	}
}

func TestWithCause_系统错误捕获一次栈(t *testing.T) {
	cause := errors.New("db down")
	err := ErrUnavailable.WithCause(cause)

	if len(err.Stack()) == 0 {
		t.Fatalf("系统类错误首次 wrap 应捕获栈")
	}
	outer := ErrInternal.WithCause(err)
	if len(outer.Stack()) != 0 {
		t.Fatalf("下层已带栈时不应重复捕获")
	}
	if !errors.Is(outer, ErrInternal) || !errors.Is(outer, cause) {
		t.Fatalf("cause 链应可溯源, got=%v", outer)
	}
}
