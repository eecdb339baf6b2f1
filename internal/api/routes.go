package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
)

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/query/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	ws.
		Route(ws.GET("/health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}).
			Returns(503, "Service Unavailable", HealthResponse{}))

	ws.
		Route(ws.POST("/find").
			To(handler.Find).
			Doc("Run a metadata query").
			Metadata(restfulspec.KeyOpenAPITags, []string{"query"}).
			Reads(FindRequest{}).
			Writes(FindResponse{}).
			Returns(200, "OK", FindResponse{}).
			Returns(400, "Bad Request", ErrorResponse{}).
			Returns(500, "Internal Server Error", ErrorResponse{}))

	ws.
		Route(ws.GET("/attributes").
			To(handler.Attributes).
			Doc("List the attribute vocabulary").
			Metadata(restfulspec.KeyOpenAPITags, []string{"query"}).
			Writes(AttributesResponse{}).
			Returns(200, "OK", AttributesResponse{}))

	container.Add(ws)
}

// RegisterOpenAPI serves the generated API document at /apidocs.json.
// Call after RegisterRoutes so all web services are picked up.
func RegisterOpenAPI(container *restful.Container) {
	config := restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       "/apidocs.json",
		PostBuildSwaggerObjectHandler: enrichSwagger,
	}
	container.Add(restfulspec.NewOpenAPIService(config))
}

func enrichSwagger(s *spec.Swagger) {
	s.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "mdsearch",
			Description: "Indexed file metadata search",
			Version:     "1.0.0",
		},
	}
}
