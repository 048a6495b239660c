package temperament

import (
	"net/http"

	"github.com/go-chi/chi/v5"

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
	router.Get("/", handler.listTemperaments)
	return router
}

func (handler *Handler) listTemperaments(writer http.ResponseWriter, request *http.Request) {
	temperaments, err := handler.service.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, temperaments)
}
