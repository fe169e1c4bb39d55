package server

const (
	green      = "\033[32m"
	blue       = "\033[34m"
	yellow     = "\033[33m"
	gray       = "\033[90m"
	resetColor = "\033[0m"
)

var methodColours = map[string]string{
	"GET":     green,
	"POST":    blue,
	"OPTIONS": yellow,
}

// colourMethod wraps an HTTP method in its console colour. Methods without one are gray.
func colourMethod(method string) string {
	c, ok := methodColours[method]
	if !ok {
		c = gray
	}
	return c + method + resetColor
}
