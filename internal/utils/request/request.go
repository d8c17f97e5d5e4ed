package request

import (
	"net/http"

	"github.com/go-resty/resty/v2"
)

// Request is the shared HTTP client for all providers. It honors proxy
// settings from the environment and retries transport-level failures.
var Request = resty.New().SetTransport(&http.Transport{
	Proxy: http.ProxyFromEnvironment,
}).SetRetryCount(3)
