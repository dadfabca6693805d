package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/shelfplan/pkg/buildinfo"
	"github.com/matzehuels/shelfplan/pkg/catalog"
	"github.com/matzehuels/shelfplan/pkg/core/placement"
	"github.com/matzehuels/shelfplan/pkg/editor"
	"github.com/matzehuels/shelfplan/pkg/errors"
	"github.com/matzehuels/shelfplan/pkg/httputil"
	"github.com/matzehuels/shelfplan/pkg/planogram"
	"github.com/matzehuels/shelfplan/pkg/render"
	"github.com/matzehuels/shelfplan/pkg/render/supportgraph"
	"github.com/matzehuels/shelfplan/pkg/storage"
)

// =============================================================================
// Request and response bodies
// =============================================================================

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type createRequest struct {
	Name string `json:"name"`
}

type previewRequest struct {
	editor.DropRequest
	ExcludeUID string `json:"exclude_uid,omitempty"`
}

type moveRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type widthRequest struct {
	Width float64 `json:"width"`
}

type surfaceRequest struct {
	Kind string `json:"kind"`
}

type heightRequest struct {
	Height float64 `json:"height"`
}

type supportsResponse struct {
	Supports map[string]placement.Support `json:"supports"`
	Floating []string                     `json:"floating"`
}

type catalogResponse struct {
	Products   []catalog.Product `json:"products"`
	Categories []string          `json:"categories"`
}

// =============================================================================
// Health and catalog
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.JSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cat := s.runner.Catalog
	httputil.JSON(w, http.StatusOK, catalogResponse{
		Products:   cat.Search(q.Get("q"), q.Get("category")),
		Categories: cat.Categories(),
	})
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.runner.Catalog.Find(chi.URLParam(r, "productID"))
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, p)
}

// =============================================================================
// Planogram documents
// =============================================================================

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := s.runner.List(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	if list == nil {
		list = []storage.Summary{}
	}
	httputil.JSON(w, http.StatusOK, list)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httputil.Decode(w, r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	p, err := s.runner.Create(r.Context(), req.Name)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	w.Header().Set("Location", "/planograms/"+p.ID)
	s.writePlanogram(w, http.StatusCreated, p)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	p, err := s.runner.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}
	if rev, err := storage.Revision(p); err == nil {
		etag := strconv.Quote(rev)
		if r.Header.Get("If-None-Match") == etag {
			w.Header().Set("ETag", etag)
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}
	s.writePlanogram(w, http.StatusOK, p)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var p planogram.Planogram
	if err := httputil.Decode(w, r, &p); err != nil {
		httputil.Error(w, err)
		return
	}
	switch p.ID {
	case "":
		p.ID = id
	case id:
	default:
		httputil.Error(w, errors.New(errors.ErrCodeInvalidInput, "document id %q does not match path id %q", p.ID, id))
		return
	}
	out, err := s.runner.Import(r.Context(), &p)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	s.writePlanogram(w, http.StatusOK, out)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.runner.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writePlanogram writes p with its content revision as ETag.
func (s *Server) writePlanogram(w http.ResponseWriter, status int, p *planogram.Planogram) {
	if rev, err := storage.Revision(p); err == nil {
		w.Header().Set("ETag", strconv.Quote(rev))
	}
	httputil.JSON(w, status, p)
}

// =============================================================================
// Placement
// =============================================================================

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := httputil.Decode(w, r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	res, err := s.runner.Preview(r.Context(), chi.URLParam(r, "id"), req.DropRequest, req.ExcludeUID)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, res)
}

func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	var req editor.DropRequest
	if err := httputil.Decode(w, r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	res, err := s.runner.Drop(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, res)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := httputil.Decode(w, r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	res, err := s.runner.Move(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "uid"), req.X, req.Y)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, res)
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK)(s.runner.RemoveItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "uid")))
}

func (s *Server) handleSupports(w http.ResponseWriter, r *http.Request) {
	p, supports, err := s.runner.Supports(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}
	floating := []string{}
	for _, it := range p.Items {
		if _, ok := supports[it.UID]; !ok {
			floating = append(floating, it.UID)
		}
	}
	httputil.JSON(w, http.StatusOK, supportsResponse{Supports: supports, Floating: floating})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	p, supports, err := s.runner.Supports(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}
	q := r.URL.Query()
	detailed, _ := strconv.ParseBool(q.Get("detailed"))
	dot := supportgraph.ToDOT(p, supports, supportgraph.Options{Detailed: detailed})

	format, err := render.ParseFormat(q.Get("format"))
	if err != nil {
		httputil.Error(w, err)
		return
	}
	data := []byte(dot)
	if format != render.FormatDOT {
		svg, err := supportgraph.RenderSVG(r.Context(), dot)
		if err != nil {
			httputil.Error(w, errors.Wrap(errors.ErrCodeInternal, err, "render support graph"))
			return
		}
		if data, err = render.Convert(r.Context(), svg, format); err != nil {
			httputil.Error(w, err)
			return
		}
	}
	w.Header().Set("Content-Type", render.ContentType(format))
	_, _ = w.Write(data)
}

// =============================================================================
// Units and surfaces
// =============================================================================

func (s *Server) handleAddUnit(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusCreated)(s.runner.AddUnit(r.Context(), chi.URLParam(r, "id")))
}

func (s *Server) handleRemoveUnit(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK)(s.runner.RemoveUnit(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "unitID")))
}

func (s *Server) handleSetUnitWidth(w http.ResponseWriter, r *http.Request) {
	var req widthRequest
	if err := httputil.Decode(w, r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	s.respond(w, http.StatusOK)(s.runner.SetUnitWidth(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "unitID"), req.Width))
}

func (s *Server) handleAddSurface(w http.ResponseWriter, r *http.Request) {
	var req surfaceRequest
	if err := httputil.Decode(w, r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	s.respond(w, http.StatusCreated)(s.runner.AddSurface(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "unitID"), req.Kind))
}

func (s *Server) handleMoveSurface(w http.ResponseWriter, r *http.Request) {
	var req heightRequest
	if err := httputil.Decode(w, r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	s.respond(w, http.StatusOK)(s.runner.MoveSurface(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "unitID"), chi.URLParam(r, "surfaceID"), req.Height))
}

func (s *Server) handleRemoveSurface(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK)(s.runner.RemoveSurface(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "unitID"), chi.URLParam(r, "surfaceID")))
}

// respond returns a writer for the (planogram, error) pair of an edit.
func (s *Server) respond(w http.ResponseWriter, status int) func(*planogram.Planogram, error) {
	return func(p *planogram.Planogram, err error) {
		if err != nil {
			httputil.Error(w, err)
			return
		}
		s.writePlanogram(w, status, p)
	}
}
