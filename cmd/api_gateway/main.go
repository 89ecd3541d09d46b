package main

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/ridloal/lux-storefront/internal/platform/config"
	"github.com/ridloal/lux-storefront/internal/platform/logger"
)

func newSingleHostReverseProxy(targetHost string) (*httputil.ReverseProxy, error) {
	targetURL, err := url.Parse(targetHost)
	if err != nil {
		return nil, fmt.Errorf("failed to parse target URL '%s': %w", targetHost, err)
	}

	proxy := httputil.NewSingleHostReverseProxy(targetURL)
	// Catalog and dashboard streams are server-sent events; flush every write.
	proxy.FlushInterval = -1

	proxy.ErrorHandler = func(rw http.ResponseWriter, req *http.Request, err error) {
		logger.Error(fmt.Sprintf("Gateway: proxy error for %s %s to %s", req.Method, req.URL.Path, targetURL), err)
		http.Error(rw, "Service unavailable or proxy error", http.StatusBadGateway)
	}
	return proxy, nil
}

func main() {
	config.LoadDotEnv()
	cfg := config.LoadGatewayConfig()
	logger.Info("Starting API Gateway on port " + cfg.ListenPort)

	mux := http.NewServeMux()

	// Services expect the full path, so prefixes are not stripped.
	serviceMappings := map[string]string{
		"/api/v1/catalog":  cfg.StorefrontServiceURL,
		"/api/v1/catalog/": cfg.StorefrontServiceURL,
		"/api/v1/admin/":   cfg.AdminServiceURL,
	}

	for pathPrefix, targetHost := range serviceMappings {
		proxy, err := newSingleHostReverseProxy(targetHost)
		if err != nil {
			logger.Error(fmt.Sprintf("Failed to create reverse proxy for target %s (prefix %s)", targetHost, pathPrefix), err)
			continue
		}
		mux.Handle(pathPrefix, proxy)
		logger.Info(fmt.Sprintf("Routing %s to %s", pathPrefix, targetHost))
	}

	server := &http.Server{
		Addr:    ":" + cfg.ListenPort,
		Handler: mux,
	}

	logger.Info(fmt.Sprintf("API Gateway successfully configured and listening on :%s", cfg.ListenPort))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("API Gateway failed to start or crashed", err)
	}
}
