package adopter

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/catcafe/catcafe/internal/platform/request"
	"github.com/catcafe/catcafe/internal/platform/respond"
)

// CatsByAdopter resolves the cats currently adopted by the given adopter.
// It is injected from the composition root so this package never imports the
// cat registry.
type CatsByAdopter func(ctx context.Context, adopterID int64) (any, error)

type Handler struct {
	service *Service
	catsFor CatsByAdopter
}

func NewHandler(service *Service, catsFor CatsByAdopter) *Handler {
	return &Handler{service: service, catsFor: catsFor}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listAdopters)
	router.Post("/", handler.createAdopter)
	router.Get("/{id}", handler.getAdopter)
	router.Patch("/{id}", handler.updateAdopter)
	router.Delete("/{id}", handler.deleteAdopter)

	return router
}

func (handler *Handler) listAdopters(writer http.ResponseWriter, request *http.Request) {
	adopters, err := handler.service.ListAdopters(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, adopters)
}

func (handler *Handler) getAdopter(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	adopter, err := handler.service.GetAdopter(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ?includeCats=true embeds the adopter's current cats in the payload.
	includeCats := strings.EqualFold(request.URL.Query().Get("includeCats"), "true")
	if !includeCats || handler.catsFor == nil {
		respond.OK(writer, adopter)
		return
	}

	cats, err := handler.catsFor(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, struct {
		*Adopter
		Cats any `json:"cats"`
	}{Adopter: adopter, Cats: cats})
}

func (handler *Handler) createAdopter(writer http.ResponseWriter, request *http.Request) {
	var input Adopter
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateAdopter(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateAdopter(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	adopter, err := handler.service.UpdateAdopter(request.Context(), id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, adopter)
}

func (handler *Handler) deleteAdopter(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntParam(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteAdopter(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
