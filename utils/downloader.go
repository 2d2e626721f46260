package utils

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// TryDownloadStringWithHeader try download string by url
func TryDownloadStringWithHeader(url string, headers map[string]string, retry int, retryInterval time.Duration) (string, error) {
	code, buffer, err := TryDownloadBytesWithHeader(url, headers, retry, retryInterval)
	if err != nil {
		return "", err
	}

	if code != http.StatusOK {
		zap.L().Warn("unexpected response status", zap.Int("code", code), zap.String("url", url))
		return "", fmt.Errorf("unexpected response status (%d)%s", code, http.StatusText(code))
	}

	return string(buffer), nil
}

// TryDownloadBytesWithHeader try download bytes by url
func TryDownloadBytesWithHeader(url string, headers map[string]string, retry int, retryInterval time.Duration) (int, []byte, error) {
	var code int
	var buffer []byte
	var err error

	for times := 0; times <= retry; times++ {
		code, buffer, err = downloadBytesWithHeader(url, headers)
		if err == nil {
			return code, buffer, nil
		}

		if times < retry {
			zap.L().Warn("download failed, retry later",
				zap.Error(err),
				zap.String("url", url),
				zap.Duration("after", retryInterval))
			time.Sleep(retryInterval)
		}
	}

	return code, buffer, err
}

func downloadBytesWithHeader(url string, headers map[string]string) (int, []byte, error) {
	request, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}

	for key, value := range headers {
		request.Header.Set(key, value)
	}

	response, err := http.DefaultClient.Do(request)
	if err != nil {
		return 0, nil, err
	}
	defer response.Body.Close()

	buffer, err := io.ReadAll(response.Body)
	if err != nil {
		return response.StatusCode, nil, err
	}

	return response.StatusCode, buffer, nil
}
