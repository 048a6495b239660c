package cat

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/catcafe/catcafe/internal/platform/request"
	"github.com/catcafe/catcafe/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCats)
	router.Post("/", handler.createCat)
	router.Get("/{id}", handler.getCat)
	router.Put("/{id}", handler.replaceCat)
	router.Patch("/{id}", handler.patchAssignment)
	router.Delete("/{id}", handler.deleteCat)

	return router
}

func (handler *Handler) listCats(writer http.ResponseWriter, request *http.Request) {
	cats, err := handler.service.ListCats(request.Context(), filterFromQuery(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, cats)
}

func (handler *Handler) getCat(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	cat, err := handler.service.GetCat(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, cat)
}

func (handler *Handler) createCat(writer http.ResponseWriter, request *http.Request) {
	var input Cat
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateCat(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) replaceCat(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Cat
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	cat, err := handler.service.ReplaceCat(request.Context(), id, &input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, cat)
}

func (handler *Handler) patchAssignment(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch AssignmentPatch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	cat, err := handler.service.PatchAssignment(request.Context(), id, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, cat)
}

func (handler *Handler) deleteCat(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteCat(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// filterFromQuery parses ?temperaments=a|b and ?isAdopted=true|false.
// An unparseable isAdopted value is ignored rather than rejected.
func filterFromQuery(request *http.Request) Filter {
	var filter Filter

	if raw := request.URL.Query().Get("temperaments"); raw != "" {
		for _, token := range strings.Split(raw, "|") {
			if token = strings.TrimSpace(token); token != "" {
				filter.Temperaments = append(filter.Temperaments, token)
			}
		}
	}

	switch strings.ToLower(request.URL.Query().Get("isAdopted")) {
	case "true":
		adopted := true
		filter.IsAdopted = &adopted
	case "false":
		adopted := false
		filter.IsAdopted = &adopted
	}

	return filter
}
