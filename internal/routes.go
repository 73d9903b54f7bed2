package internal

import (
	"net/http"

	"github.com/naka-gawa/github-profile-stats/internal/controllers"
	"github.com/naka-gawa/github-profile-stats/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/analyze/{name}", http.HandlerFunc(apiController.Analyze))
	routers.Get("/analysis/{id}", http.HandlerFunc(apiController.GetAnalysis))
	routers.Get("/contributions/{login}", http.HandlerFunc(apiController.GetContributions))
	routers.Get("/history", http.HandlerFunc(apiController.GetHistory))
	routers.Get("/compare/{slug}", http.HandlerFunc(apiController.Compare))
	return routers
}
