package echo

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/fwojciec/lectio"
	"github.com/labstack/echo/v4"
)

// MaxSearchLimit caps the page size a client may request.
const MaxSearchLimit = 50

// PassageResponse is a looked up passage.
type PassageResponse struct {
	Reference string            `json:"reference"`
	Version   string            `json:"version"`
	Text      string            `json:"text"`
	Markdown  string            `json:"markdown"`
	Range     lectio.VerseRange `json:"range"`
}

func newPassageResponse(p *lectio.Passage) PassageResponse {
	resp := PassageResponse{
		Reference: p.Range.String(),
		Text:      lectio.StripBold(p.Text),
		Markdown:  lectio.FormatPassage(p, 0),
		Range:     p.Range,
	}
	if p.Version != nil {
		resp.Version = p.Version.Abbreviation
	}
	return resp
}

// ReferenceResponse is the outcome of one bracketed reference.
type ReferenceResponse struct {
	Text    string           `json:"text"`
	Passage *PassageResponse `json:"passage,omitempty"`
	Error   *ErrorResponse   `json:"error,omitempty"`
}

// SearchResponse is one page of search hits.
type SearchResponse struct {
	Total    int               `json:"total"`
	Offset   int               `json:"offset"`
	Passages []PassageResponse `json:"passages"`
}

// VersionRequest is the body of a preference change.
type VersionRequest struct {
	Version string `json:"version"`
}

func (s *Server) handleVersions(c echo.Context) error {
	versions, err := s.service.Versions.FindVersions(c.Request().Context())
	if err != nil {
		return err
	}
	if versions == nil {
		versions = []*lectio.Version{}
	}
	return c.JSON(http.StatusOK, versions)
}

// handleLookup handles GET /lookup?ref=John+3:16&version=esv.
func (s *Server) handleLookup(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	ref := c.QueryParam("ref")
	if ref == "" {
		return lectio.Errorf(lectio.EINVALID, "ref is required")
	}

	p, err := s.service.Lookup(c.Request().Context(), who, ref, c.QueryParam("version"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newPassageResponse(p))
}

// handleReferences handles GET /references?text=..., resolving every
// bracketed reference in the text.
func (s *Server) handleReferences(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}

	results, err := s.service.LookupAll(c.Request().Context(), who, c.QueryParam("text"))
	if err != nil {
		return err
	}

	out := make([]ReferenceResponse, len(results))
	for i, res := range results {
		out[i].Text = res.Match.Text
		if res.Err != nil {
			out[i].Error = &ErrorResponse{Code: lectio.ErrorCode(res.Err), Error: lectio.ErrorMessage(res.Err)}
			continue
		}
		p := newPassageResponse(res.Passage)
		out[i].Passage = &p
	}
	return c.JSON(http.StatusOK, out)
}

// handleSearch handles GET /search?terms=faith+hope&version=esv&limit=5&offset=0.
func (s *Server) handleSearch(c echo.Context) error {
	who, err := caller(c)
	if err != nil {
		return err
	}
	limit, err := intParam(c, "limit")
	if err != nil {
		return err
	}
	offset, err := intParam(c, "offset")
	if err != nil {
		return err
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	opts := lectio.SearchOptions{Limit: limit, Offset: offset}
	res, err := s.service.Search(c.Request().Context(), who, c.QueryParam("version"), strings.Fields(c.QueryParam("terms")), opts)
	if err != nil {
		return err
	}

	out := SearchResponse{Total: res.Total, Offset: offset, Passages: make([]PassageResponse, len(res.Passages))}
	for i, p := range res.Passages {
		out.Passages[i] = newPassageResponse(p)
	}
	return c.JSON(http.StatusOK, out)
}

func ownerID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, lectio.Errorf(lectio.EINVALID, "id must be a numeric ID")
	}
	return id, nil
}

func (s *Server) handleSetVersion(kind lectio.OwnerKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := ownerID(c)
		if err != nil {
			return err
		}
		var req VersionRequest
		if err := c.Bind(&req); err != nil {
			return lectio.Errorf(lectio.EINVALID, "Invalid request body")
		}
		if req.Version == "" {
			return lectio.Errorf(lectio.EINVALID, "version is required")
		}

		v, err := s.service.SetVersion(c.Request().Context(), kind, id, req.Version)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, v)
	}
}

func (s *Server) handleUnsetVersion(kind lectio.OwnerKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := ownerID(c)
		if err != nil {
			return err
		}
		if err := s.service.UnsetVersion(c.Request().Context(), kind, id); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}
