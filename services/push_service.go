package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"

	"github.com/DeepVaishnav17/WarrantyTrackerApp/models"
)

type snsAPI interface {
	CreatePlatformEndpoint(ctx context.Context, params *awssns.CreatePlatformEndpointInput, optFns ...func(*awssns.Options)) (*awssns.CreatePlatformEndpointOutput, error)
	Publish(ctx context.Context, params *awssns.PublishInput, optFns ...func(*awssns.Options)) (*awssns.PublishOutput, error)
}

type DeviceStore interface {
	Upsert(ctx context.Context, dev *models.UserDevice) error
	ListEnabled(ctx context.Context, userID uint) ([]models.UserDevice, error)
	SetEnabled(ctx context.Context, userID uint, enabled bool) error
}

type PushService struct {
	devices        DeviceStore
	sns            snsAPI
	fcmPlatformArn string
	log            *zap.Logger
}

// NewPushService returns a push service. With a nil SNS client, device
// registration fails with ErrPushDisabled and pushes are no-ops.
func NewPushService(devices DeviceStore, client snsAPI, fcmPlatformArn string, log *zap.Logger) *PushService {
	return &PushService{devices: devices, sns: client, fcmPlatformArn: fcmPlatformArn, log: log}
}

type RegisterDeviceReq struct {
	Platform string `json:"platform" binding:"required,oneof=android ios"`
	Token    string `json:"token" binding:"required"`
}

func tokenHash(tok string) string {
	h := sha256.Sum256([]byte(tok))
	return hex.EncodeToString(h[:])
}

func (p *PushService) enabled() bool {
	return p.sns != nil && p.fcmPlatformArn != ""
}

func (p *PushService) RegisterDevice(ctx context.Context, userID uint, platform, token string) (*models.UserDevice, error) {
	if !p.enabled() {
		return nil, ErrPushDisabled
	}
	platform = strings.ToLower(platform)
	if platform != "android" && platform != "ios" {
		return nil, invalid("platform", "must be android or ios")
	}

	out, err := p.sns.CreatePlatformEndpoint(ctx, &awssns.CreatePlatformEndpointInput{
		PlatformApplicationArn: aws.String(p.fcmPlatformArn),
		Token:                  aws.String(token),
	})
	if err != nil {
		return nil, err
	}

	dev := &models.UserDevice{
		UserID:      userID,
		Platform:    platform,
		TokenHash:   tokenHash(token),
		EndpointARN: aws.ToString(out.EndpointArn),
	}
	if err := p.devices.Upsert(ctx, dev); err != nil {
		return nil, err
	}
	return dev, nil
}

// SetEnabled toggles mobile push for all of the user's devices.
func (p *PushService) SetEnabled(ctx context.Context, userID uint, enabled bool) error {
	return p.devices.SetEnabled(ctx, userID, enabled)
}

func (p *PushService) PushToUser(ctx context.Context, userID uint, title, body string, data map[string]string) {
	if !p.enabled() {
		return
	}
	endpoints, err := p.devices.ListEnabled(ctx, userID)
	if err != nil {
		p.log.Warn("list push devices failed", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	if len(endpoints) == 0 {
		return
	}

	gcm, _ := json.Marshal(map[string]any{
		"notification": map[string]string{
			"title": title,
			"body":  body,
		},
		"data": data,
	})
	raw, _ := json.Marshal(map[string]string{
		"default": body,
		"GCM":     string(gcm),
	})

	for _, d := range endpoints {
		_, err := p.sns.Publish(ctx, &awssns.PublishInput{
			MessageStructure: aws.String("json"),
			Message:          aws.String(string(raw)),
			TargetArn:        aws.String(d.EndpointARN),
		})
		if err != nil {
			p.log.Warn("sns publish failed",
				zap.Uint("user_id", userID),
				zap.String("endpoint", d.EndpointARN),
				zap.Error(err),
			)
		}
	}
}
