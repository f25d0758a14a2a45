// Copyright 2020, Square, Inc.

// Package api provides controllers for each api endpoint. Controllers are
// "dumb wiring"; there is little to no application logic in this package.
// Controllers call the graphs.Manager to satisfy the api endpoint.
package api

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"

	"github.com/square/kvdag/errors"
	"github.com/square/kvdag/keypath"
	"github.com/square/kvdag/kvdag"
	"github.com/square/kvdag/kvdag-server/app"
	"github.com/square/kvdag/kvdag-server/graphs"
	"github.com/square/kvdag/proto"
	"github.com/square/kvdag/render"
	v "github.com/square/kvdag/version"
)

const (
	API_ROOT = "/api/v1/"
)

// API provides controllers for endpoints it registers with a router.
// It satisfies the http.HandlerFunc interface.
type API struct {
	appCtx app.Context
	gm     graphs.Manager
	// --
	echo *echo.Echo
}

// NewAPI creates a new API struct. It initializes an echo web server within the
// struct, and registers all of the API's routes with it.
func NewAPI(appCtx app.Context, gm graphs.Manager) *API {
	api := &API{
		appCtx: appCtx,
		gm:     gm,
		// --
		echo: echo.New(),
	}

	// //////////////////////////////////////////////////////////////////////
	// Routes
	// //////////////////////////////////////////////////////////////////////

	// Graph
	api.echo.GET(API_ROOT+"graphs", api.listGraphsHandler)                   // list -> []proto.GraphInfo
	api.echo.POST(API_ROOT+"graphs", api.createGraphHandler)                 // create
	api.echo.GET(API_ROOT+"graphs/:graph", api.getGraphHandler)              // get -> proto.GraphInfo
	api.echo.GET(API_ROOT+"graphs/:graph/document", api.documentHandler)     // export as YAML
	api.echo.GET(API_ROOT+"graphs/:graph/edges", api.listEdgesHandler)       // list -> []proto.Edge
	api.echo.GET(API_ROOT+"graphs/:graph/vertices", api.listVerticesHandler) // list -> []proto.Vertex

	// Vertex
	api.echo.POST(API_ROOT+"graphs/:graph/vertices", api.createVertexHandler)                   // create
	api.echo.GET(API_ROOT+"graphs/:graph/vertices/:vertex", api.getVertexHandler)               // get -> proto.Vertex
	api.echo.PUT(API_ROOT+"graphs/:graph/vertices/:vertex/attrs", api.mergeAttrsHandler)        // merge local attrs
	api.echo.GET(API_ROOT+"graphs/:graph/vertices/:vertex/resolved", api.resolvedHandler)       // -> proto.Resolved
	api.echo.GET(API_ROOT+"graphs/:graph/vertices/:vertex/ancestors", api.ancestorsHandler)     // -> []proto.Vertex
	api.echo.GET(API_ROOT+"graphs/:graph/vertices/:vertex/descendants", api.descendantsHandler) // -> []proto.Vertex
	api.echo.GET(API_ROOT+"graphs/:graph/vertices/:vertex/compare/:other", api.compareHandler)  // -> proto.Ordering
	api.echo.POST(API_ROOT+"graphs/:graph/vertices/:vertex/edges", api.createEdgeHandler)       // link

	// Meta
	api.echo.GET("/version", api.versionHandler) // return version.Version()

	// //////////////////////////////////////////////////////////////////////
	// Middleware and hooks
	// //////////////////////////////////////////////////////////////////////
	api.echo.Use(middleware.Recover())
	api.echo.Use(middleware.Logger())
	api.echo.Use((func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(v.HEADER, v.Version())
			return next(c)
		}
	}))

	return api
}

func (api *API) Router() *echo.Echo {
	return api.echo
}

// Run makes the API listen on the configured address.
func (api *API) Run() error {
	var err error
	if api.appCtx.Config.Server.TLS.CertFile != "" && api.appCtx.Config.Server.TLS.KeyFile != "" {
		err = api.echo.StartTLS(api.appCtx.Config.Server.Addr, api.appCtx.Config.Server.TLS.CertFile, api.appCtx.Config.Server.TLS.KeyFile)
	} else {
		err = api.echo.Start(api.appCtx.Config.Server.Addr)
	}
	return err
}

// Stop stops the API when it's running. When Stop is called, Run returns
// immediately. Make sure to wait for Stop to return.
func (api *API) Stop() error {
	var err error
	if api.appCtx.Config.Server.TLS.CertFile != "" && api.appCtx.Config.Server.TLS.KeyFile != "" {
		err = api.echo.TLSServer.Shutdown(context.TODO())
	} else {
		err = api.echo.Server.Shutdown(context.TODO())
	}
	return err
}

// ServeHTTP makes the API implement the http.HandlerFunc interface.
func (api *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	api.echo.ServeHTTP(w, r)
}

// ============================== CONTROLLERS ============================== //

// GET <API_ROOT>/graphs
func (api *API) listGraphsHandler(c echo.Context) error {
	infos, err := api.gm.Graphs()
	if err != nil {
		return handleError(err, c)
	}
	return c.JSON(http.StatusOK, infos)
}

// POST <API_ROOT>/graphs
// Create an empty graph.
func (api *API) createGraphHandler(c echo.Context) error {
	var cg proto.CreateGraph
	if err := c.Bind(&cg); err != nil {
		return err
	}
	info, err := api.gm.CreateGraph(cg.Name)
	if err != nil {
		return handleError(err, c)
	}
	return c.JSON(http.StatusCreated, info)
}

// GET <API_ROOT>/graphs/{graph}
func (api *API) getGraphHandler(c echo.Context) error {
	info, err := api.gm.Graph(c.Param("graph"))
	if err != nil {
		return handleError(err, c)
	}
	return c.JSON(http.StatusOK, info)
}

// GET <API_ROOT>/graphs/{graph}/document
// Export the graph as a YAML graph document.
func (api *API) documentHandler(c echo.Context) error {
	doc, err := api.gm.Document(c.Param("graph"))
	if err != nil {
		return handleError(err, c)
	}
	var buf bytes.Buffer
	if err := render.YAML(&buf, doc); err != nil {
		return handleError(err, c)
	}
	return c.Blob(http.StatusOK, "application/x-yaml", buf.Bytes())
}

// GET <API_ROOT>/graphs/{graph}/edges?match=
func (api *API) listEdgesHandler(c echo.Context) error {
	edges, err := api.gm.Edges(c.Param("graph"), vertexQuery(c))
	if err != nil {
		return handleError(err, c)
	}
	return c.JSON(http.StatusOK, edges)
}

// GET <API_ROOT>/graphs/{graph}/vertices?match=
func (api *API) listVerticesHandler(c echo.Context) error {
	vs, err := api.gm.Vertices(c.Param("graph"), vertexQuery(c))
	if err != nil {
		return handleError(err, c)
	}
	return c.JSON(http.StatusOK, vs)
}

// POST <API_ROOT>/graphs/{graph}/vertices
func (api *API) createVertexHandler(c echo.Context) error {
	var cv proto.CreateVertex
	if err := c.Bind(&cv); err != nil {
		return err
	}
	vertex, err := api.gm.CreateVertex(c.Param("graph"), cv)
	if err != nil {
		return handleError(err, c)
	}
	return c.JSON(http.StatusCreated, vertex)
}

// GET <API_ROOT>/graphs/{graph}/vertices/{vertex}
func (api *API) getVertexHandler(c echo.Context) error {
	vertex, err := api.gm.Vertex(c.Param("graph"), c.Param("vertex"))
	if err != nil {
		return handleError(err, c)
	}
	return c.JSON(http.StatusOK, vertex)
}

// PUT <API_ROOT>/graphs/{graph}/vertices/{vertex}/attrs
// Deep-merge the payload into the local attributes of the vertex.
func (api *API) mergeAttrsHandler(c echo.Context) error {
	attrs := map[string]interface{}{}
	if err := c.Bind(&attrs); err != nil {
		return err
	}
	vertex, err := api.gm.MergeAttrs(c.Param("graph"), c.Param("vertex"), attrs)
	if err != nil {
		return handleError(err, c)
	}
	return c.JSON(http.StatusOK, vertex)
}

// GET <API_ROOT>/graphs/{graph}/vertices/{vertex}/resolved?filter=a.b,c&key=x.y
func (api *API) resolvedHandler(c echo.Context) error {
	r, err := api.gm.Resolved(c.Param("graph"), c.Param("vertex"), vertexQuery(c))
	if err != nil {
		return handleError(err, c)
	}
	return c.JSON(http.StatusOK, r)
}

// GET <API_ROOT>/graphs/{graph}/vertices/{vertex}/ancestors?match=
func (api *API) ancestorsHandler(c echo.Context) error {
	vs, err := api.gm.Ancestors(c.Param("graph"), c.Param("vertex"), vertexQuery(c))
	if err != nil {
		return handleError(err, c)
	}
	return c.JSON(http.StatusOK, vs)
}

// GET <API_ROOT>/graphs/{graph}/vertices/{vertex}/descendants?match=
func (api *API) descendantsHandler(c echo.Context) error {
	vs, err := api.gm.Descendants(c.Param("graph"), c.Param("vertex"), vertexQuery(c))
	if err != nil {
		return handleError(err, c)
	}
	return c.JSON(http.StatusOK, vs)
}

// GET <API_ROOT>/graphs/{graph}/vertices/{vertex}/compare/{other}
func (api *API) compareHandler(c echo.Context) error {
	o, err := api.gm.Compare(c.Param("graph"), c.Param("vertex"), c.Param("other"))
	if err != nil {
		return handleError(err, c)
	}
	return c.JSON(http.StatusOK, o)
}

// POST <API_ROOT>/graphs/{graph}/vertices/{vertex}/edges
// Link the vertex to a parent.
func (api *API) createEdgeHandler(c echo.Context) error {
	var ce proto.CreateEdge
	if err := c.Bind(&ce); err != nil {
		return err
	}
	edge, err := api.gm.Link(c.Param("graph"), c.Param("vertex"), ce)
	if err != nil {
		return handleError(err, c)
	}
	return c.JSON(http.StatusCreated, edge)
}

// GET /version
func (api *API) versionHandler(c echo.Context) error {
	return c.String(http.StatusOK, v.Version())
}

// ------------------------------------------------------------------------- //

func vertexQuery(c echo.Context) proto.VertexQuery {
	q := proto.VertexQuery{
		Match: c.QueryParam("match"),
		Key:   c.QueryParam("key"),
	}
	if filter := c.QueryParam("filter"); filter != "" {
		q.Filter = strings.Split(filter, ",")
	}
	return q
}

func handleError(err error, c echo.Context) error {
	ret := proto.Error{
		Message:    err.Error(),
		HTTPStatus: http.StatusInternalServerError,
	}

	switch e := err.(type) {
	case errors.GraphNotFound:
		ret.HTTPStatus = http.StatusNotFound
		ret.Entity = e.Graph
	case errors.VertexNotFound:
		ret.HTTPStatus = http.StatusNotFound
		ret.Entity = e.Vertex
	case kvdag.AttrNotFound:
		ret.HTTPStatus = http.StatusNotFound
		ret.Entity = e.Node
	case keypath.PathNotFound:
		ret.HTTPStatus = http.StatusNotFound
	case errors.GraphExists:
		ret.HTTPStatus = http.StatusConflict
		ret.Entity = e.Graph
	case kvdag.DuplicateVertexError:
		ret.HTTPStatus = http.StatusConflict
		ret.Entity = e.Id
	case kvdag.CyclicError:
		ret.HTTPStatus = http.StatusConflict
		ret.Entity = e.From
	case errors.ErrInvalidRequest, kvdag.CrossGraphError, kvdag.PredicateError, keypath.TypeError:
		ret.HTTPStatus = http.StatusBadRequest
	}

	return c.JSON(ret.HTTPStatus, ret)
}
