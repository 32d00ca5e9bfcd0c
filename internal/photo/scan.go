package photo

import (
	"bytes"
	"context"
	"fmt"

	"github.com/dutchcoders/go-clamd"
)

// Scanner inspects upload bytes before validation.
type Scanner interface {
	Scan(ctx context.Context, data []byte) error
}

// ClamdScanner 通过 clamd 扫描上传内容。
type ClamdScanner struct {
	Addr string
}

func (s ClamdScanner) Scan(ctx context.Context, data []byte) error {
	client := clamd.NewClamd(s.Addr)

	abortChan := make(chan bool)
	defer close(abortChan)

	scanChan, err := client.ScanStream(bytes.NewReader(data), abortChan)
	if err != nil {
		return fmt.Errorf("scan upload: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case result, ok := <-scanChan:
			if !ok {
				return nil
			}
			if result.Status != clamd.RES_OK {
				return reject(ReasonMalicious, "%s", result.Description)
			}
		}
	}
}
