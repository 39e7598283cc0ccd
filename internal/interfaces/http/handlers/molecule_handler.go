package handlers

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	appmol "github.com/turtacn/FragSAR/internal/application/molecule"
	"github.com/turtacn/FragSAR/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FragSAR/pkg/errors"
	moltypes "github.com/turtacn/FragSAR/pkg/types/molecule"
)

// DefaultMaxBodySize caps request bodies when the handler is built with 0.
const DefaultMaxBodySize = 1 << 20

// MoleculeHandler serves the enumeration endpoints.
type MoleculeHandler struct {
	svc         appmol.Service
	logger      logging.Logger
	maxBodySize int64
}

// NewMoleculeHandler creates a MoleculeHandler.
func NewMoleculeHandler(svc appmol.Service, logger logging.Logger, maxBodySize int64) *MoleculeHandler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}
	return &MoleculeHandler{svc: svc, logger: logger, maxBodySize: maxBodySize}
}

// Enumerate handles POST /enumerate.
//
// smiles, limit and groups (repeatable) are read from the query string. The
// body may be a JSON array, taken as groups, or an object with any of
// smiles, groups and limit, whose fields win over the query.
//
// A blank smiles value (smiles= or "smiles":"") is rejected with 422
// "field required: smiles" instead of being answered with {"rows":[]}.
func (h *MoleculeHandler) Enumerate(w http.ResponseWriter, r *http.Request) {
	input, err := h.parseEnumerate(w, r)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	res, err := h.svc.Enumerate(r.Context(), input)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, moltypes.EnumerateResponse{Rows: res.Rows})
}

// Describe handles POST /describe with {"smiles": ...} or ?smiles=.
func (h *MoleculeHandler) Describe(w http.ResponseWriter, r *http.Request) {
	smiles := r.URL.Query().Get("smiles")
	body, err := h.readBody(w, r)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	if len(body) > 0 {
		var req moltypes.DescribeRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeAppError(w, r, h.logger, errors.Validation("malformed JSON body: "+err.Error()))
			return
		}
		if req.SMILES != "" {
			smiles = req.SMILES
		}
	}
	row, err := h.svc.Describe(r.Context(), smiles)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}

// Groups handles GET /groups.
func (h *MoleculeHandler) Groups(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, moltypes.GroupsResponse{Groups: h.svc.ListGroups(r.Context())})
}

// enumerateBody is the object form of the request body. Groups is kept raw
// so that an explicit null can be told apart from a missing key.
type enumerateBody struct {
	SMILES *string         `json:"smiles"`
	Groups json.RawMessage `json:"groups"`
	Limit  *int            `json:"limit"`
}

func (h *MoleculeHandler) parseEnumerate(w http.ResponseWriter, r *http.Request) (*appmol.EnumerateInput, error) {
	q := r.URL.Query()
	input := &appmol.EnumerateInput{SMILES: q.Get("smiles")}
	hasSMILES := q.Has("smiles")

	if q.Has("limit") {
		n, err := strconv.Atoi(q.Get("limit"))
		if err != nil {
			return nil, errors.Validation("limit: value is not a valid integer")
		}
		input.Limit = &n
	}
	if q.Has("groups") {
		input.Groups = q["groups"]
	}

	body, err := h.readBody(w, r)
	if err != nil {
		return nil, err
	}
	switch {
	case len(body) == 0 || bytes.Equal(body, []byte("null")):
	case body[0] == '[':
		var groups []string
		if err := json.Unmarshal(body, &groups); err != nil {
			return nil, errors.Validation("groups: " + err.Error())
		}
		input.Groups = groups
	case body[0] == '{':
		var b enumerateBody
		if err := json.Unmarshal(body, &b); err != nil {
			return nil, errors.Validation("malformed JSON body: " + err.Error())
		}
		if b.SMILES != nil {
			input.SMILES = *b.SMILES
			hasSMILES = true
		}
		if b.Limit != nil {
			input.Limit = b.Limit
		}
		if len(b.Groups) > 0 {
			var groups []string
			if err := json.Unmarshal(b.Groups, &groups); err != nil {
				return nil, errors.Validation("groups: " + err.Error())
			}
			input.Groups = groups
		}
	default:
		return nil, errors.Validation("body must be a JSON array of group tags or a JSON object")
	}

	if !hasSMILES {
		return nil, errors.Validation("field required: smiles")
	}
	return input, nil
}

// readBody reads at most maxBodySize bytes and trims surrounding space.
func (h *MoleculeHandler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.Validation("request body too large")
		}
		return nil, errors.Validation("failed to read request body: " + err.Error())
	}
	return bytes.TrimSpace(data), nil
}

//Personal.AI order the ending
