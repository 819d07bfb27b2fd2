package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"

	"homebudget/internal/money"
)

func init() {
	Register()
}

type amountBody struct {
	Amount money.Amount `binding:"positive_amount"`
}

type nameBody struct {
	Name string `binding:"required,notblank"`
}

func TestPositiveAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  money.Amount
		wantErr bool
	}{
		{"positive", money.MustParse("0.01"), false},
		{"zero", 0, true},
		{"negative", money.MustParse("-3"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(amountBody{Amount: tt.amount})
			if (err != nil) != tt.wantErr {
				t.Errorf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNotBlank(t *testing.T) {
	if err := binding.Validator.ValidateStruct(nameBody{Name: "   "}); err == nil {
		t.Error("expected blank name to be rejected")
	}
	if err := binding.Validator.ValidateStruct(nameBody{Name: "food"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
