package handlers

import (
	"net/http"

	"scm-gateway/internal/middlewares"
)

type productsResponse struct {
	ProductIDs []string `json:"product_ids"`
}

type validateProductRequest struct {
	Parameters map[string]string `json:"parameters"`
}

func HandlerListProducts(ctx *middlewares.AppContext) {
	ids, err := ctx.CA.ProductIDs(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.WriteJSON(http.StatusOK, productsResponse{ProductIDs: ids})
}

func HandlerValidateProduct(ctx *middlewares.AppContext) {
	var req validateProductRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.DecodeJSON(&req); err != nil {
			ctx.SetJSONError(http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	if err := ctx.CA.ValidateProduct(ctx, ctx.URLParam("productID"), req.Parameters); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.SetJSONStatus(http.StatusOK, "valid")
}
