package staff

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/catcafe/catcafe/internal/platform/request"
	"github.com/catcafe/catcafe/internal/platform/respond"
)

// CatsByStaff resolves the cats a staff member is in charge of. Injected from
// the composition root so this package never imports the cat registry.
type CatsByStaff func(ctx context.Context, staffID string) (any, error)

type Handler struct {
	service *Service
	catsFor CatsByStaff
}

func NewHandler(service *Service, catsFor CatsByStaff) *Handler {
	return &Handler{service: service, catsFor: catsFor}
}

// Routes returns the staff directory routes. Authentication is enforced by
// the caller when mounting; every staff route is behind a valid token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listStaff)
	router.Post("/", handler.createStaff)
	router.Get("/{id}", handler.getStaff)
	router.Patch("/{id}", handler.updateStaff)
	router.Delete("/{id}", handler.deleteStaff)

	return router
}

func (handler *Handler) listStaff(writer http.ResponseWriter, request *http.Request) {
	members, err := handler.service.ListStaff(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, members)
}

func (handler *Handler) getStaff(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	member, err := handler.service.GetStaff(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// ?includeCats=true embeds the cats this member is in charge of.
	includeCats := strings.EqualFold(request.URL.Query().Get("includeCats"), "true")
	if !includeCats || handler.catsFor == nil {
		respond.OK(writer, member)
		return
	}

	cats, err := handler.catsFor(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, struct {
		*Staff
		Cats any `json:"cats"`
	}{Staff: member, Cats: cats})
}

func (handler *Handler) createStaff(writer http.ResponseWriter, request *http.Request) {
	var input Staff
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateStaff(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateStaff(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	member, err := handler.service.UpdateStaff(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, member)
}

func (handler *Handler) deleteStaff(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteStaff(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
