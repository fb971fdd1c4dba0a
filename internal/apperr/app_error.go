package apperr

import "github.com/cafebonheur/pos/pkg/zerror"

var (
	ProductNotFoundErr  = zerror.NewNotFound("PRODUCT_NOT_FOUND", "product not found")
	CustomerNotFoundErr = zerror.NewNotFound("CUSTOMER_NOT_FOUND", "customer not found")
	UserNotFoundErr     = zerror.NewNotFound("USER_NOT_FOUND", "user not found")
)
