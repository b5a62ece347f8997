package produto

import (
	"net/http"
	"strings"
)

// Endpoint describes one remote operation: its verb and a path template
// whose {name} placeholders are filled from call parameters.
type Endpoint struct {
	Name         string
	Method       string
	PathTemplate string
}

const (
	OpAllProducts = "getAllProducts"
	OpProductByID = "getProductById"
)

var (
	AllProductsEndpoint = Endpoint{
		Name:         OpAllProducts,
		Method:       http.MethodGet,
		PathTemplate: "/Produto/AllProdutos",
	}
	ProductByIDEndpoint = Endpoint{
		Name:         OpProductByID,
		Method:       http.MethodGet,
		PathTemplate: "/Produto/ProdutosById/{id}",
	}
)

// endpoints lists every operation the client knows, keyed by name.
var endpoints = map[string]Endpoint{
	OpAllProducts: AllProductsEndpoint,
	OpProductByID: ProductByIDEndpoint,
}

// Path expands the template. Values are substituted verbatim; unknown
// placeholders are left in place.
func (e Endpoint) Path(params map[string]string) string {
	if len(params) == 0 {
		return e.PathTemplate
	}
	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(e.PathTemplate)
}
