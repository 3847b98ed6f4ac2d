package controllers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/km-arc/go-passform/form"
	gohttp "github.com/km-arc/go-passform/framework/http"
	"github.com/km-arc/go-passform/framework/http/validation"
)

// FormController drives form sessions: capture on blur, toggle visibility,
// submit.
type FormController struct {
	store    form.Store
	logger   *zap.Logger
	recorder Recorder
}

func NewFormController(store form.Store, logger *zap.Logger, recorder Recorder) *FormController {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &FormController{store: store, logger: logger, recorder: recorder}
}

// Store handles POST /forms.
func (c *FormController) Store(w http.ResponseWriter, r *http.Request) {
	var f *form.Form
	f = c.store.Create(form.OnAccept(func(string) {
		c.logger.Info("password accepted", zap.String("form_id", f.ID()))
	}))
	c.recorder.SetFormsActive(c.store.Count())

	gohttp.NewResponse(w).Created(f.Snapshot())
}

// Show handles GET /forms/{id}.
func (c *FormController) Show(w http.ResponseWriter, r *http.Request) {
	f, ok := c.find(w, r)
	if !ok {
		return
	}
	gohttp.NewResponse(w).Success(f.Snapshot())
}

// fieldNames is the in: list for the {field} route param.
var fieldNames = func() string {
	names := make([]string, len(form.Fields))
	for i, f := range form.Fields {
		names[i] = string(f)
	}
	return strings.Join(names, ",")
}()

type captureRequest struct {
	Value string `json:"value"`
}

// Capture handles PUT /forms/{id}/fields/{field}: the value a field held
// when the user left it.
func (c *FormController) Capture(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)

	f, ok := c.find(w, r)
	if !ok {
		return
	}

	v := validation.Make(map[string]string{
		"field": req.RouteParam("field"),
	}, validation.Rules{
		"field": "required|in:" + fieldNames,
	})
	if v.Fails() {
		res.ValidationError(v.Errors())
		return
	}

	var body captureRequest
	if err := req.Bind(&body); err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	if err := f.Blur(form.Field(req.RouteParam("field")), body.Value); err != nil {
		c.fail(res, err)
		return
	}
	res.Success(f.Snapshot())
}

// ToggleVisibility handles POST /forms/{id}/visibility.
func (c *FormController) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	f, ok := c.find(w, r)
	if !ok {
		return
	}
	f.ToggleVisibility()
	gohttp.NewResponse(w).Success(f.Snapshot())
}

// Submit handles POST /forms/{id}/submit.
func (c *FormController) Submit(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)

	f, ok := c.find(w, r)
	if !ok {
		return
	}

	result := f.Submit()
	c.recorder.ObserveValidation(result.Kind)

	if result.OK() {
		res.Success(f.Snapshot())
		return
	}
	res.JSON(http.StatusUnprocessableEntity, map[string]any{
		"message": result.Message(),
		"kind":    result.Kind,
		"code":    result.Code(),
		"data":    f.Snapshot(),
	})
}

// Destroy handles DELETE /forms/{id}.
func (c *FormController) Destroy(w http.ResponseWriter, r *http.Request) {
	req, res := gohttp.NewRequest(r), gohttp.NewResponse(w)

	if err := c.store.Delete(req.RouteParam("id")); err != nil {
		c.fail(res, err)
		return
	}
	c.recorder.SetFormsActive(c.store.Count())
	res.NoContent()
}

func (c *FormController) find(w http.ResponseWriter, r *http.Request) (*form.Form, bool) {
	f, err := c.store.Get(gohttp.NewRequest(r).RouteParam("id"))
	if err != nil {
		c.fail(gohttp.NewResponse(w), err)
		return nil, false
	}
	return f, true
}

func (c *FormController) fail(res *gohttp.Response, err error) {
	switch {
	case errors.Is(err, form.ErrNotFound):
		res.NotFound("Form not found.")
	case errors.Is(err, form.ErrAccepted):
		res.Conflict("Password already accepted.")
	default:
		c.logger.Error("form request failed", zap.Error(err))
		res.ServerError()
	}
}
