package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sittawut/doctors-portal/store"
)

type ProjectHandler struct {
	projects ProjectStore
}

func NewProjectHandler(projects ProjectStore) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

func (h *ProjectHandler) GetProjects(c *gin.Context) {
	projects, err := h.projects.List(c.Request.Context())
	if err != nil {
		respondFailure(c, "ProjectHandler", http.StatusInternalServerError, "Failed to fetch projects", err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) GetProjectByID(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "Invalid project ID")
		return
	}

	project, err := h.projects.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "Project not found")
			return
		}
		respondFailure(c, "ProjectHandler", http.StatusInternalServerError, "Failed to fetch project", err)
		return
	}
	c.JSON(http.StatusOK, project)
}
