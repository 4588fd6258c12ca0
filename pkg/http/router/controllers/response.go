package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lintang-b-s/navigatorx-guidance/pkg/util"
	"go.uber.org/zap"
)

type envelope map[string]any

func (api *turnAPI) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func (api *turnAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string, validation []string) {
	var resp errorResponse
	resp.Error.Code = http.StatusText(status)
	resp.Error.Message = message
	resp.Error.Validation = validation

	if err := api.writeJSON(w, status, resp, nil); err != nil {
		api.log.Error("write error response", zap.String("path", r.URL.Path), zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (api *turnAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("internal server error", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	api.errorResponse(w, r, http.StatusInternalServerError, util.MessageInternalServerError, nil)
}

func (api *turnAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, err.Error(), nil)
}

func (api *turnAPI) NotFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusNotFound, err.Error(), nil)
}

func (api *turnAPI) ValidationErrorResponse(w http.ResponseWriter, r *http.Request, validation []string) {
	api.errorResponse(w, r, http.StatusBadRequest, "validation error", validation)
}

// getStatusCode. map kode util.Error ke status http.
func (api *turnAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	var uerr *util.Error
	if !errors.As(err, &uerr) {
		api.ServerErrorResponse(w, r, err)
		return
	}
	switch uerr.Code() {
	case util.ErrNotFound:
		api.NotFoundResponse(w, r, err)
	case util.ErrBadParamInput:
		api.BadRequestResponse(w, r, err)
	case util.ErrConflict:
		api.errorResponse(w, r, http.StatusConflict, err.Error(), nil)
	default:
		api.ServerErrorResponse(w, r, err)
	}
}

type requestValidator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func newRequestValidator() *requestValidator {
	validate := validator.New()
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
	return &requestValidator{validate: validate, trans: trans}
}

// Struct. nil kalau valid, kalau tidak pesan error yang sudah diterjemahkan.
func (rv *requestValidator) Struct(s any) []string {
	err := rv.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, e.Translate(rv.trans))
	}
	return msgs
}

func queryFloat(r *http.Request, name string) (float64, error) {
	v, err := util.StringToFloat64(r.URL.Query().Get(name))
	if err != nil {
		return 0, fmt.Errorf("%s is required and must be a valid float", name)
	}
	return v, nil
}
