// internal/domain/payment/service_test.go
package payment

import (
	"errors"
	"testing"
)

func TestVerifyCapture(t *testing.T) {
	tests := []struct {
		name          string
		recordedID    string
		captureID     string
		captureStatus string
		successStatus string
		wantErr       bool
	}{
		{
			name:          "matching id and completed status",
			recordedID:    "5O190127TN364715T",
			captureID:     "5O190127TN364715T",
			captureStatus: "COMPLETED",
			successStatus: "COMPLETED",
			wantErr:       false,
		},
		{
			name:          "capture id does not match recorded transaction",
			recordedID:    "5O190127TN364715T",
			captureID:     "9XJ12345AB987654C",
			captureStatus: "COMPLETED",
			successStatus: "COMPLETED",
			wantErr:       true,
		},
		{
			name:          "status not completed",
			recordedID:    "5O190127TN364715T",
			captureID:     "5O190127TN364715T",
			captureStatus: "PENDING",
			successStatus: "COMPLETED",
			wantErr:       true,
		},
		{
			name:          "no transaction recorded at initiation",
			recordedID:    "",
			captureID:     "5O190127TN364715T",
			captureStatus: "COMPLETED",
			successStatus: "COMPLETED",
			wantErr:       true,
		},
		{
			name:          "empty capture id",
			recordedID:    "5O190127TN364715T",
			captureID:     "",
			captureStatus: "COMPLETED",
			successStatus: "COMPLETED",
			wantErr:       true,
		},
		{
			name:          "stripe succeeded",
			recordedID:    "pi_3MtwBwLkdIwHu7ix28a3tqPa",
			captureID:     "pi_3MtwBwLkdIwHu7ix28a3tqPa",
			captureStatus: "succeeded",
			successStatus: "succeeded",
			wantErr:       false,
		},
		{
			name:          "stripe requires_payment_method",
			recordedID:    "pi_3MtwBwLkdIwHu7ix28a3tqPa",
			captureID:     "pi_3MtwBwLkdIwHu7ix28a3tqPa",
			captureStatus: "requires_payment_method",
			successStatus: "succeeded",
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyCapture(tt.recordedID, tt.captureID, tt.captureStatus, tt.successStatus)
			if tt.wantErr {
				if !errors.Is(err, ErrPaymentVerificationFailed) {
					t.Fatalf("expected ErrPaymentVerificationFailed, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
