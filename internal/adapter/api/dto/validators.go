package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/hugohenrick/pdv-supermercado/pkg/validation"
)

// skuRule valida o formato do SKU ainda na deserialização da requisição
func skuRule(fl validator.FieldLevel) bool {
	_, err := validation.NormalizeSKU(fl.Field().String())
	return err == nil
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("sku", skuRule)
	}
}
