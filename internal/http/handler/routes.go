package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/config"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/http/middleware"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/model"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/repository"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/service"
	"github.com/marcinwojcik-dev/capital-marketplace-backend/internal/upload"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Document
// routes sit behind JWT auth; operational endpoints are open.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, companies repository.CompanyRepository, cfg *config.AppConfig) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health endpoint: checks DB connectivity only
	app.Get("/health", HealthCheck(db))

	// Simple liveness probe
	app.Get("/healthz", LivenessProbe())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	docs := app.Group("/api/documents", middleware.Auth(cfg.JWTSecret))
	docs.Post("/", UploadDocuments(docSvc, companies, cfg))
	docs.Get("/", ListDocuments(docSvc, companies))
	docs.Get("/download/:id", DownloadDocument(docSvc, companies))
	docs.Delete("/:id", DeleteDocument(docSvc, companies))
}

// HealthCheck pings the database with a short deadline.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe answers 200 unconditionally.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

var (
	errNoUser    = errors.New("no authenticated user")
	errNoCompany = errors.New("user has no company")
)

// resolveCompany looks up the authenticated user's company. A user without a
// company cannot touch documents at all, so absence is an authorization
// failure rather than a lookup miss. A non-nil error always means the
// request must stop; company is nil in that case.
func resolveCompany(c *fiber.Ctx, companies repository.CompanyRepository) (*model.Company, string, error) {
	userID, _ := c.Locals(middleware.UserIDLocalKey).(string)
	if userID == "" {
		return nil, "", errNoUser
	}

	company, err := companies.FindByUserID(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", errNoCompany
		}
		return nil, "", err
	}
	return company, userID, nil
}

func writeCompanyError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errNoUser):
		return writeError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
	case errors.Is(err, errNoCompany):
		return writeError(c, fiber.StatusForbidden, "COMPANY_REQUIRED", "no company registered for this user")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// UploadDocuments consumes the multipart request body as a stream, one part
// at a time, and hands the resulting batch to the document service.
func UploadDocuments(docSvc service.DocumentService, companies repository.CompanyRepository, cfg *config.AppConfig) fiber.Handler {
	limits := upload.Limits{
		MaxFiles:    cfg.Upload.MaxFilesPerUpload,
		MaxFileSize: cfg.Upload.MaxFileSize,
	}
	return func(c *fiber.Ctx) error {
		company, userID, err := resolveCompany(c, companies)
		if err != nil {
			return writeCompanyError(c, err)
		}

		mediaType, params, err := mime.ParseMediaType(c.Get(fiber.HeaderContentType))
		if err != nil || mediaType != fiber.MIMEMultipartForm || params["boundary"] == "" {
			return writeError(c, fiber.StatusBadRequest, "INVALID_CONTENT_TYPE", "multipart/form-data required")
		}

		// Scanning a full batch can take minutes; push the connection
		// deadline out so the response is not cut off mid-scan.
		if conn := c.Context().Conn(); conn != nil {
			_ = conn.SetWriteDeadline(time.Now().Add(cfg.Scanner.Timeout))
		}

		mr := multipart.NewReader(c.Context().RequestBodyStream(), params["boundary"])
		batch, err := upload.ReadBatch(c.UserContext(), mr, limits)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "MALFORMED_MULTIPART", "could not read multipart body")
		}

		stored, err := docSvc.UploadBatch(c.UserContext(), company, userID, batch)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"documents": stored})
	}
}

// ListDocuments returns the caller's company documents, newest first.
func ListDocuments(docSvc service.DocumentService, companies repository.CompanyRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		company, _, err := resolveCompany(c, companies)
		if err != nil {
			return writeCompanyError(c, err)
		}

		docs, err := docSvc.List(c.UserContext(), company.ID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"documents": docs})
	}
}

// DownloadDocument streams the stored bytes back as an attachment.
func DownloadDocument(docSvc service.DocumentService, companies repository.CompanyRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		company, _, err := resolveCompany(c, companies)
		if err != nil {
			return writeCompanyError(c, err)
		}

		rc, doc, err := docSvc.Download(c.UserContext(), company, c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", sanitizeHeaderValue(doc.Name)))
		c.Set(fiber.HeaderContentType, doc.ContentType)
		return c.SendStream(rc, int(doc.Size))
	}
}

// DeleteDocument removes bytes and record, then confirms what was deleted.
func DeleteDocument(docSvc service.DocumentService, companies repository.CompanyRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		company, userID, err := resolveCompany(c, companies)
		if err != nil {
			return writeCompanyError(c, err)
		}

		doc, err := docSvc.Delete(c.UserContext(), company, userID, c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"id": doc.ID, "name": doc.Name})
	}
}

// sanitizeHeaderValue keeps stored names from breaking the header syntax.
func sanitizeHeaderValue(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '"' || r == '\r' || r == '\n' {
			return '_'
		}
		return r
	}, s)
}
