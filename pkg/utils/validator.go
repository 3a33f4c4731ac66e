package util

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"Gestion-Solicitudes/models"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()

	Validate.RegisterValidation("hasuppercase", validateHasUppercase)
	Validate.RegisterValidation("tipopermiso", validateTipoPermiso)
}

func validateHasUppercase(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}

// oneof no sirve aquí: los valores del catálogo llevan espacios.
func validateTipoPermiso(fl validator.FieldLevel) bool {
	return models.EsTipoPermisoValido(fl.Field().String())
}

type ErrorResponse struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Msg   string `json:"message"`
}

func ValidateStruct(s interface{}) []*ErrorResponse {
	var errors []*ErrorResponse
	err := Validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			var element ErrorResponse
			element.Field = err.Field()
			element.Tag = err.Tag()

			switch err.Tag() {
			case "required":
				element.Msg = fmt.Sprintf("El campo '%s' es obligatorio.", element.Field)
			case "min":
				element.Msg = fmt.Sprintf("El campo '%s' debe tener al menos %s caracteres.", element.Field, err.Param())
			case "max":
				element.Msg = fmt.Sprintf("El campo '%s' debe tener como máximo %s caracteres.", element.Field, err.Param())
			case "email":
				element.Msg = "El formato del email no es válido."
			case "hasuppercase":
				element.Msg = "La contraseña debe contener al menos una mayúscula."
			case "datetime":
				element.Msg = fmt.Sprintf("El campo '%s' debe tener formato AAAA-MM-DD.", element.Field)
			case "oneof":
				element.Msg = fmt.Sprintf("El campo '%s' debe ser uno de: %s.", element.Field, err.Param())
			case "tipopermiso":
				element.Msg = "El tipo de permiso no pertenece al catálogo."
			default:
				element.Msg = fmt.Sprintf("El campo '%s' no pasó la validación '%s'.", element.Field, element.Tag)
			}
			errors = append(errors, &element)
		}
	}
	return errors
}
