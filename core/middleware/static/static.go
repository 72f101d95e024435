package static

import (
	"io"
	"path"
	"strconv"
	"strings"

	"cnet-api/core/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
)

// Config configures static asset serving.
type Config struct {
	// Prefix is the URL prefix of the assets, e.g. "/static".
	Prefix string
	// Root is the local directory served when Store is nil.
	Root string
	// Store, when set, serves assets from Bucket instead of Root.
	Store  storage.Client
	Bucket string
	// MaxAgeSeconds sets Cache-Control max-age on served assets.
	MaxAgeSeconds int
}

// Register mounts static asset serving on router. Requests for assets that
// do not exist fall through to the next stage.
func Register(router fiber.Router, cfg Config) {
	prefix := "/" + strings.Trim(cfg.Prefix, "/")
	if prefix == "/" {
		prefix = "/static"
	}

	if cfg.Store == nil {
		router.Static(prefix, cfg.Root, fiber.Static{
			Browse: false,
			MaxAge: cfg.MaxAgeSeconds,
		})
		return
	}

	router.Get(prefix+"/*", bucketHandler(cfg))
}

func bucketHandler(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := path.Clean("/" + c.Params("*"))
		key = strings.TrimPrefix(key, "/")
		if key == "" || key == "." {
			return c.Next()
		}

		ctx := c.UserContext()
		info, err := cfg.Store.StatObject(ctx, cfg.Bucket, key, minio.StatObjectOptions{})
		if storage.IsNotFound(err) {
			return c.Next()
		}
		if err != nil {
			return err
		}

		obj, err := cfg.Store.GetObject(ctx, cfg.Bucket, key, minio.GetObjectOptions{})
		if err != nil {
			return err
		}
		defer obj.Close()

		data, err := io.ReadAll(obj)
		if err != nil {
			return err
		}

		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		} else {
			c.Type(strings.TrimPrefix(path.Ext(key), "."))
		}
		if info.ETag != "" {
			c.Set(fiber.HeaderETag, `"`+info.ETag+`"`)
		}
		if cfg.MaxAgeSeconds > 0 {
			c.Set(fiber.HeaderCacheControl, "public, max-age="+strconv.Itoa(cfg.MaxAgeSeconds))
		}
		return c.Send(data)
	}
}
