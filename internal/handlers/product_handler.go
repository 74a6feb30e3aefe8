package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"product-catalog/internal/models"
	"product-catalog/internal/services"

	"github.com/rs/zerolog"
)

// AssetPrefix is where product images are served from.
const AssetPrefix = "/static/images/"

const maxUploadBytes = 10 << 20

var (
	errUnsupportedContentType = errors.New("unsupported content type")
	errInvalidBody            = errors.New("invalid request body")
	errMissingFields          = errors.New("name and price are required")
	errInvalidPrice           = errors.New("price must be a number")
)

type ProductHandler struct {
	productService *services.ProductService
	uploadService  *services.UploadService
	logger         zerolog.Logger
}

func NewProductHandler(productService *services.ProductService, uploadService *services.UploadService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		uploadService:  uploadService,
		logger:         logger,
	}
}

// productInput is the decoded body of an add-product request, regardless of
// which content shape carried it. Only multipart submissions carry a file.
type productInput struct {
	Name        string
	Description string
	Price       float64
	ImageRef    string

	file   multipart.File
	header *multipart.FileHeader
}

// GetProducts returns every product. Authentication is optional and does
// not change the response.
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.GetProducts()
	if err != nil {
		h.logger.Error().Err(err).Msg("Listing products failed")
		respondWithError(w, http.StatusInternalServerError, "internal_error", "An internal error occurred")
		return
	}

	resp := make([]models.ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, models.ProductResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			ImageURL:    AssetPrefix + p.ImageRef,
		})
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// AddProduct creates a product from either a JSON body or a multipart form
// with an optional image upload. The request body is decoded once, up
// front; everything after decodeProductInput is shape-independent.
func (h *ProductHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	input, err := decodeProductInput(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if input.file != nil {
		defer input.file.Close()
	}

	imageRef := input.ImageRef
	savedFile := ""
	if input.file != nil {
		name, err := h.uploadService.SaveImage(input.file, input.header)
		if err != nil {
			h.logger.Error().Err(err).Msg("Storing uploaded image failed")
			respondWithError(w, http.StatusInternalServerError, "internal_error", "An internal error occurred")
			return
		}
		imageRef = name
		savedFile = name
	}
	if imageRef == "" {
		imageRef = models.DefaultProductImage
	}

	id, err := h.productService.CreateProduct(input.Name, input.Description, input.Price, imageRef)
	if err != nil {
		h.uploadService.Remove(savedFile)
		h.logger.Error().Err(err).Msg("Creating product failed")
		respondWithError(w, http.StatusInternalServerError, "internal_error", "An internal error occurred")
		return
	}

	respondWithJSON(w, http.StatusCreated, models.CreateProductResponse{
		Msg:      "Product added",
		ID:       id,
		ImageURL: AssetPrefix + imageRef,
	})
}

func decodeProductInput(r *http.Request) (*productInput, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, errUnsupportedContentType
	}

	switch mediaType {
	case "application/json":
		return decodeJSONProduct(r)
	case "multipart/form-data":
		return decodeMultipartProduct(r)
	default:
		return nil, errUnsupportedContentType
	}
}

func decodeJSONProduct(r *http.Request) (*productInput, error) {
	var req models.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errInvalidBody
	}
	if req.Name == "" || req.Price == nil {
		return nil, errMissingFields
	}

	return &productInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		ImageRef:    req.ImageURL,
	}, nil
}

func decodeMultipartProduct(r *http.Request) (*productInput, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, errInvalidBody
	}

	name := r.FormValue("name")
	priceStr := r.FormValue("price")
	if name == "" || priceStr == "" {
		return nil, errMissingFields
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return nil, errInvalidPrice
	}

	input := &productInput{
		Name:        name,
		Description: r.FormValue("description"),
		Price:       price,
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		input.file = file
		input.header = header
	case errors.Is(err, http.ErrMissingFile):
		// no image attached, sentinel applies
	default:
		return nil, errInvalidBody
	}

	return input, nil
}
