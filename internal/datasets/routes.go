package datasets

import (
	"net/http"

	"github.com/gorilla/mux"
)

const (
	uuidPattern = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`
	apiPrefix   = "/api/fit-files"
)

// SetupRoutes registers the dataset API on the main router. uploadLimit wraps
// the routes receiving files, sharedLimit the public shared routes; nil means no limit.
func (handler *Handler) SetupRoutes(r *mux.Router, uploadLimit, sharedLimit func(http.Handler) http.Handler) {
	if uploadLimit == nil {
		uploadLimit = noLimit
	}
	if sharedLimit == nil {
		sharedLimit = noLimit
	}

	// shared (read only, token authorized) routes go first, before the {id} ones
	r.Handle(apiPrefix+"/shared/{token}", sharedLimit(http.HandlerFunc(handler.HandleGetShared))).
		Methods("GET", "OPTIONS").Name("get-shared-dataset")
	r.Handle(apiPrefix+"/shared/{token}/file/{fileId:"+uuidPattern+"}/data", sharedLimit(http.HandlerFunc(handler.HandleSharedFileData))).
		Methods("GET", "OPTIONS").Name("get-shared-file-data")
	r.Handle(apiPrefix+"/shared/{token}/compare", sharedLimit(http.HandlerFunc(handler.HandleSharedCompare))).
		Methods("GET", "OPTIONS").Name("compare-shared-dataset")

	r.HandleFunc(apiPrefix, handler.HandleList).Methods("GET", "OPTIONS").Name("list-datasets")
	r.Handle(apiPrefix, uploadLimit(http.HandlerFunc(handler.HandleCreate))).
		Methods("POST", "OPTIONS").Name("new-dataset")
	r.HandleFunc(apiPrefix+"/file/{fileId:"+uuidPattern+"}/data", handler.HandleFileData).
		Methods("GET", "OPTIONS").Name("get-file-data")

	datasetPath := apiPrefix + "/{id:" + uuidPattern + "}"
	r.HandleFunc(datasetPath, handler.HandleGet).Methods("GET", "OPTIONS").Name("get-dataset")
	r.HandleFunc(datasetPath, handler.HandleRename).Methods("PATCH", "OPTIONS").Name("rename-dataset")
	r.HandleFunc(datasetPath, handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-dataset")
	r.Handle(datasetPath+"/files", uploadLimit(http.HandlerFunc(handler.HandleAddFiles))).
		Methods("POST", "OPTIONS").Name("add-files")
	r.HandleFunc(datasetPath+"/file/{fileId:"+uuidPattern+"}", handler.HandleDeleteFile).
		Methods("DELETE", "OPTIONS").Name("delete-file")
	r.HandleFunc(datasetPath+"/share", handler.HandleShare).Methods("POST", "OPTIONS").Name("share-dataset")
	r.HandleFunc(datasetPath+"/share", handler.HandleUnshare).Methods("DELETE", "OPTIONS").Name("unshare-dataset")
	r.HandleFunc(datasetPath+"/compare", handler.HandleCompare).Methods("GET", "OPTIONS").Name("compare-dataset")
	r.HandleFunc(datasetPath+"/export", handler.HandleExport).Methods("GET", "OPTIONS").Name("export-dataset")
}

func noLimit(next http.Handler) http.Handler {
	return next
}
