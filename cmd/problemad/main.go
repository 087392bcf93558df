// Command problemad exposes the problema cipher over HTTP for local
// experimentation. Keys are derived per request from a passphrase; the
// block path carries byte payloads, the character path carries text.
package main

import (
	"encoding/hex"
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	problema "github.com/problema-cipher/problema"
	"github.com/problema-cipher/problema/pkg/passkey"
)

type cryptoRequest struct {
	Key  string `json:"key" binding:"required"`
	Text string `json:"text"`
	// Mode selects "block" (default) or "char".
	Mode string `json:"mode"`
}

type cryptoResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Ciphertext string `json:"ciphertext,omitempty"`
	Text       string `json:"text,omitempty"`
}

func main() {
	log := logrus.New()

	router := gin.Default()
	router.Use(cors.Default())

	api := router.Group("/api/v1")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy"})
		})
		api.POST("/encrypt", handleEncrypt(log))
		api.POST("/decrypt", handleDecrypt(log))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.WithField("port", port).Info("problemad listening")
	if err := router.Run(":" + port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func handleEncrypt(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cipher, req, ok := bindCipher(c, log)
		if !ok {
			return
		}
		defer cipher.Close()

		var ct []byte
		var err error
		if req.Mode == "char" {
			ct, err = cipher.EncryptText([]byte(req.Text))
		} else {
			ct, err = cipher.EncryptBytes([]byte(req.Text))
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, cryptoResponse{Success: false, Message: err.Error()})
			return
		}

		c.JSON(http.StatusOK, cryptoResponse{Success: true, Ciphertext: hex.EncodeToString(ct)})
	}
}

func handleDecrypt(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cipher, req, ok := bindCipher(c, log)
		if !ok {
			return
		}
		defer cipher.Close()

		ct, err := hex.DecodeString(req.Text)
		if err != nil {
			c.JSON(http.StatusBadRequest, cryptoResponse{Success: false, Message: "ciphertext must be hex"})
			return
		}

		var pt []byte
		if req.Mode == "char" {
			pt, err = cipher.DecryptText(ct)
		} else {
			pt, err = cipher.DecryptBytes(ct)
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, cryptoResponse{Success: false, Message: err.Error()})
			return
		}

		c.JSON(http.StatusOK, cryptoResponse{Success: true, Text: string(pt)})
	}
}

// bindCipher parses the request and builds a fresh cipher context for it.
// Contexts are not shared between requests: every processed unit mutates
// rotor and register state.
func bindCipher(c *gin.Context, log *logrus.Logger) (*problema.Cipher, cryptoRequest, bool) {
	var req cryptoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, cryptoResponse{Success: false, Message: err.Error()})
		return nil, req, false
	}

	key, err := passkey.Derive(req.Key)
	if err != nil {
		c.JSON(http.StatusBadRequest, cryptoResponse{Success: false, Message: err.Error()})
		return nil, req, false
	}

	cipher, err := problema.Init(key[:], &problema.Config{Logger: log})
	if err != nil {
		c.JSON(http.StatusInternalServerError, cryptoResponse{Success: false, Message: err.Error()})
		return nil, req, false
	}

	return cipher, req, true
}
