package datasets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/2beens/fitcompare/internal/activity"
	"github.com/2beens/fitcompare/internal/auth"
	"github.com/2beens/fitcompare/internal/export"
	"github.com/2beens/fitcompare/internal/telemetry/tracing"
	"github.com/2beens/fitcompare/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	uploadFormField = "files"
	// multipart parts above this stay on disk while parsing
	multipartMemoryBytes = 32 << 20
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=datasets_test

type datasetService interface {
	List(ctx context.Context, userID string) ([]*Dataset, error)
	Get(ctx context.Context, userID string, datasetID uuid.UUID) (*Dataset, error)
	Create(ctx context.Context, userID, name string, uploads []Upload) (*Dataset, error)
	AddFiles(ctx context.Context, userID string, datasetID uuid.UUID, uploads []Upload) (*Dataset, error)
	Rename(ctx context.Context, userID string, datasetID uuid.UUID, name string) (*Dataset, error)
	Delete(ctx context.Context, userID string, datasetID uuid.UUID) error
	DeleteFile(ctx context.Context, userID string, datasetID, fileID uuid.UUID) error
	Share(ctx context.Context, userID string, datasetID uuid.UUID) (string, error)
	Unshare(ctx context.Context, userID string, datasetID uuid.UUID) error
	GetShared(ctx context.Context, token string) (*Dataset, error)
	SharedDataset(ctx context.Context, token string) (*Dataset, error)
	OwnedFile(ctx context.Context, userID string, fileID uuid.UUID) (*FitFile, error)
	FileSeries(ctx context.Context, file FitFile) (activity.Series, error)
	Compare(ctx context.Context, userID string, datasetID uuid.UUID, fileIDs []uuid.UUID) (*Comparison, error)
	CompareShared(ctx context.Context, token string, fileIDs []uuid.UUID) (*Comparison, error)
	Export(ctx context.Context, userID string, datasetID uuid.UUID, fileIDs []uuid.UUID, format export.Format) ([]byte, string, error)
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ShareResponse struct {
	ShareToken string `json:"shareToken"`
}

type renameRequest struct {
	Name string `json:"name"`
}

type Handler struct {
	service        datasetService
	maxUploadBytes int64
}

func NewHandler(service datasetService, maxUploadBytes int64) *Handler {
	return &Handler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.datasets.list")
	defer span.End()

	user, ok := userFromRequest(w, r)
	if !ok {
		return
	}

	datasets, err := handler.service.List(ctx, user.ID)
	if err != nil {
		writeServiceError(w, "list datasets", err)
		return
	}
	if datasets == nil {
		datasets = []*Dataset{}
	}
	pkg.WriteJSON(w, datasets, http.StatusOK)
}

func (handler *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.datasets.create")
	defer span.End()

	user, ok := userFromRequest(w, r)
	if !ok {
		return
	}

	uploads, ok := handler.readUploads(w, r)
	if !ok {
		return
	}

	dataset, err := handler.service.Create(ctx, user.ID, r.FormValue("name"), uploads)
	if err != nil {
		writeServiceError(w, "create dataset", err)
		return
	}

	log.Debugf("user [%s] created dataset [%s]", user.ID, dataset.ID)
	pkg.WriteJSON(w, dataset, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.datasets.get")
	defer span.End()

	user, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	datasetID, ok := uuidVar(w, r, "id")
	if !ok {
		return
	}

	dataset, err := handler.service.Get(ctx, user.ID, datasetID)
	if err != nil {
		writeServiceError(w, "get dataset", err)
		return
	}
	pkg.WriteJSON(w, dataset, http.StatusOK)
}

func (handler *Handler) HandleRename(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.datasets.rename")
	defer span.End()

	user, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	datasetID, ok := uuidVar(w, r, "id")
	if !ok {
		return
	}

	var req renameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	dataset, err := handler.service.Rename(ctx, user.ID, datasetID, req.Name)
	if err != nil {
		writeServiceError(w, "rename dataset", err)
		return
	}
	pkg.WriteJSON(w, dataset, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.datasets.delete")
	defer span.End()

	user, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	datasetID, ok := uuidVar(w, r, "id")
	if !ok {
		return
	}

	if err := handler.service.Delete(ctx, user.ID, datasetID); err != nil {
		writeServiceError(w, "delete dataset", err)
		return
	}
	pkg.WriteJSON(w, MessageResponse{Message: "Dataset deleted successfully"}, http.StatusOK)
}

func (handler *Handler) HandleAddFiles(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.datasets.addFiles")
	defer span.End()

	user, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	datasetID, ok := uuidVar(w, r, "id")
	if !ok {
		return
	}

	uploads, ok := handler.readUploads(w, r)
	if !ok {
		return
	}

	dataset, err := handler.service.AddFiles(ctx, user.ID, datasetID, uploads)
	if err != nil {
		writeServiceError(w, "add files", err)
		return
	}
	pkg.WriteJSON(w, dataset, http.StatusCreated)
}

func (handler *Handler) HandleDeleteFile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.datasets.deleteFile")
	defer span.End()

	user, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	datasetID, ok := uuidVar(w, r, "id")
	if !ok {
		return
	}
	fileID, ok := uuidVar(w, r, "fileId")
	if !ok {
		return
	}

	if err := handler.service.DeleteFile(ctx, user.ID, datasetID, fileID); err != nil {
		writeServiceError(w, "delete file", err)
		return
	}
	pkg.WriteJSON(w, MessageResponse{Message: "File deleted successfully"}, http.StatusOK)
}

func (handler *Handler) HandleShare(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.datasets.share")
	defer span.End()

	user, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	datasetID, ok := uuidVar(w, r, "id")
	if !ok {
		return
	}

	token, err := handler.service.Share(ctx, user.ID, datasetID)
	if err != nil {
		writeServiceError(w, "share dataset", err)
		return
	}
	pkg.WriteJSON(w, ShareResponse{ShareToken: token}, http.StatusCreated)
}

func (handler *Handler) HandleUnshare(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.datasets.unshare")
	defer span.End()

	user, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	datasetID, ok := uuidVar(w, r, "id")
	if !ok {
		return
	}

	if err := handler.service.Unshare(ctx, user.ID, datasetID); err != nil {
		writeServiceError(w, "unshare dataset", err)
		return
	}
	pkg.WriteJSON(w, MessageResponse{Message: "Dataset is no longer shared"}, http.StatusOK)
}

func (handler *Handler) HandleFileData(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.datasets.fileData")
	defer span.End()

	user, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	fileID, ok := uuidVar(w, r, "fileId")
	if !ok {
		return
	}

	file, err := handler.service.OwnedFile(ctx, user.ID, fileID)
	if err != nil {
		writeServiceError(w, "get file", err)
		return
	}
	handler.writeFileSamples(ctx, w, *file)
}

func (handler *Handler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.datasets.compare")
	defer span.End()

	user, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	datasetID, ok := uuidVar(w, r, "id")
	if !ok {
		return
	}
	fileIDs, ok := fileIDsQuery(w, r)
	if !ok {
		return
	}

	comparison, err := handler.service.Compare(ctx, user.ID, datasetID, fileIDs)
	if err != nil {
		writeServiceError(w, "compare", err)
		return
	}
	pkg.WriteJSON(w, comparison, http.StatusOK)
}

func (handler *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.datasets.export")
	defer span.End()

	user, ok := userFromRequest(w, r)
	if !ok {
		return
	}
	datasetID, ok := uuidVar(w, r, "id")
	if !ok {
		return
	}
	fileIDs, ok := fileIDsQuery(w, r)
	if !ok {
		return
	}
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, contentType, err := handler.service.Export(ctx, user.ID, datasetID, fileIDs, format)
	if err != nil {
		writeServiceError(w, "export", err)
		return
	}

	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf(`attachment; filename="comparison-%s.%s"`, datasetID, format),
	)
	pkg.WriteResponseBytes(w, contentType, body, http.StatusOK)
}

func (handler *Handler) HandleGetShared(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.datasets.getShared")
	defer span.End()

	dataset, err := handler.service.GetShared(ctx, mux.Vars(r)["token"])
	if err != nil {
		writeServiceError(w, "get shared dataset", err)
		return
	}
	pkg.WriteJSON(w, dataset, http.StatusOK)
}

func (handler *Handler) HandleSharedFileData(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.datasets.sharedFileData")
	defer span.End()

	fileID, ok := uuidVar(w, r, "fileId")
	if !ok {
		return
	}

	dataset, err := handler.service.SharedDataset(ctx, mux.Vars(r)["token"])
	if err != nil {
		writeServiceError(w, "get shared dataset", err)
		return
	}
	file, found := dataset.File(fileID)
	if !found {
		writeError(w, "File not found", http.StatusNotFound)
		return
	}
	handler.writeFileSamples(ctx, w, file)
}

func (handler *Handler) HandleSharedCompare(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.datasets.sharedCompare")
	defer span.End()

	fileIDs, ok := fileIDsQuery(w, r)
	if !ok {
		return
	}

	comparison, err := handler.service.CompareShared(ctx, mux.Vars(r)["token"], fileIDs)
	if err != nil {
		writeServiceError(w, "compare shared", err)
		return
	}
	pkg.WriteJSON(w, comparison, http.StatusOK)
}

func (handler *Handler) writeFileSamples(ctx context.Context, w http.ResponseWriter, file FitFile) {
	series, err := handler.service.FileSeries(ctx, file)
	if err != nil {
		writeServiceError(w, "file data", err)
		return
	}
	samples := series.Samples
	if samples == nil {
		samples = []activity.Sample{}
	}
	pkg.WriteJSON(w, samples, http.StatusOK)
}

// readUploads reads the multipart "files" parts, bounded by the max upload size.
func (handler *Handler) readUploads(w http.ResponseWriter, r *http.Request) ([]Upload, bool) {
	if handler.maxUploadBytes > 0 {
		if r.ContentLength > handler.maxUploadBytes {
			writeError(w, "Upload too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		r.Body = http.MaxBytesReader(w, r.Body, handler.maxUploadBytes)
	}

	if err := r.ParseMultipartForm(multipartMemoryBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, "Upload too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		log.Errorf("parse multipart form: %s", err)
		writeError(w, "No files uploaded", http.StatusBadRequest)
		return nil, false
	}

	headers := r.MultipartForm.File[uploadFormField]
	if len(headers) == 0 {
		writeError(w, "No files uploaded", http.StatusBadRequest)
		return nil, false
	}

	uploads := make([]Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			log.Errorf("open uploaded file [%s]: %s", fh.Filename, err)
			writeError(w, "Failed to read upload", http.StatusBadRequest)
			return nil, false
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			log.Errorf("read uploaded file [%s]: %s", fh.Filename, err)
			writeError(w, "Failed to read upload", http.StatusBadRequest)
			return nil, false
		}
		uploads = append(uploads, Upload{Name: fh.Filename, Data: data})
	}

	return uploads, true
}

func userFromRequest(w http.ResponseWriter, r *http.Request) (auth.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return auth.User{}, false
	}
	return user, true
}

func uuidVar(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		writeError(w, fmt.Sprintf("invalid %s", name), http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

// fileIDsQuery parses the comma separated "files" query param, empty means all files.
func fileIDsQuery(w http.ResponseWriter, r *http.Request) ([]uuid.UUID, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("files"))
	if raw == "" {
		return nil, true
	}

	var ids []uuid.UUID
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			writeError(w, fmt.Sprintf("invalid file id: %s", part), http.StatusBadRequest)
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

func writeError(w http.ResponseWriter, message string, status int) {
	pkg.WriteJSON(w, ErrorResponse{Error: message}, status)
}

// writeServiceError maps service errors to HTTP statuses. Only unexpected
// errors are logged as errors.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, "Dataset not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		writeError(w, "Unauthorized", http.StatusForbidden)
	case errors.Is(err, ErrNoFitFiles):
		writeError(w, "No files uploaded", http.StatusBadRequest)
	case errors.Is(err, ErrInvalidName), errors.Is(err, export.ErrUnknownFormat):
		writeError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrBlobMissing):
		log.Errorf("%s: %s", op, err)
		writeError(w, "File data is no longer available", http.StatusGone)
	case errors.Is(err, activity.ErrUnreadable):
		log.Warnf("%s: %s", op, err)
		writeError(w, "File could not be parsed", http.StatusUnprocessableEntity)
	default:
		log.Errorf("%s: %s", op, err)
		writeError(w, "Internal server error", http.StatusInternalServerError)
	}
}
