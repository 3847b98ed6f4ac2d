package controllers

import (
	"net/http"

	"go.uber.org/zap"

	gohttp "github.com/km-arc/go-passform/framework/http"
	"github.com/km-arc/go-passform/framework/http/validation"
	"github.com/km-arc/go-passform/password"
)

// PasswordController validates a password pair without keeping state.
type PasswordController struct {
	logger   *zap.Logger
	recorder Recorder
}

func NewPasswordController(logger *zap.Logger, recorder Recorder) *PasswordController {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &PasswordController{logger: logger, recorder: recorder}
}

type validateRequest struct {
	Password     string `json:"password"`
	Confirmation string `json:"password_confirmation"`
}

type validateResponse struct {
	Kind  password.Kind `json:"kind"`
	Valid bool          `json:"valid"`
}

// Validate handles POST /password/validate.
func (c *PasswordController) Validate(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)

	var body validateRequest
	if err := req.Bind(&body); err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	v := validation.Make(map[string]string{
		"password":              body.Password,
		"password_confirmation": body.Confirmation,
	}, validation.Rules{
		"password": "password",
	})

	if v.Passes() {
		c.recorder.ObserveValidation(password.Success)
		res.Success(validateResponse{Kind: password.Success, Valid: true})
		return
	}

	code := v.Errors().Code("password")
	kind, _ := password.ParseKind(code)
	c.recorder.ObserveValidation(kind)
	c.logger.Debug("password rejected", zap.Stringer("kind", kind))

	extra := map[string]any{"kind": kind, "code": code}
	if kind == password.MissingCharacterClass {
		extra["missing"] = password.MissingClasses(body.Password)
	}
	res.ValidationError(v.Errors(), extra)
}

type requirementsResponse struct {
	Rules             []string `json:"rules"`
	MinLength         int      `json:"min_length"`
	SpecialCharacters string   `json:"special_characters"`
}

// Requirements handles GET /password/requirements.
func (c *PasswordController) Requirements(w http.ResponseWriter, _ *http.Request) {
	gohttp.NewResponse(w).Success(requirementsResponse{
		Rules:             password.Requirements(),
		MinLength:         password.MinLength,
		SpecialCharacters: password.SpecialCharacters,
	})
}
