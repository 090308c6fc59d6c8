package app

import (
	"context"
	"fmt"

	accessService "github.com/scholarvault/scholarvault/internal/access/service"
)

// loadSigningKeys materializes the bearer and capability signing keys through
// the key loader, unwrapping via KMS when configured. Both keys are loaded in
// one shot so the distinctness check always runs.
func (c *Container) loadSigningKeys() error {
	c.keysInit.Do(func() {
		loader := accessService.NewKeyLoader(
			c.config.BearerSecret,
			c.config.CapabilitySecret,
			c.config.KMSKeyURI,
			c.config.SecretsKMSWrapped,
		)
		bearerKey, capabilityKey, err := loader.LoadKeys(context.Background())
		if err != nil {
			c.initErrors["signingKeys"] = fmt.Errorf("failed to load signing keys: %w", err)
			return
		}
		c.bearerKey = bearerKey
		c.capabilityKey = capabilityKey
	})
	if storedErr, exists := c.initErrors["signingKeys"]; exists {
		return storedErr
	}
	return nil
}

// BearerService returns the bearer token service.
func (c *Container) BearerService() (accessService.BearerService, error) {
	c.bearerServiceInit.Do(func() {
		if err := c.loadSigningKeys(); err != nil {
			c.initErrors["bearerService"] = err
			return
		}
		c.bearerService = accessService.NewBearerService(
			c.bearerKey,
			c.config.InstitutionDomain,
			c.config.BearerTokenExpiration,
		)
	})
	if storedErr, exists := c.initErrors["bearerService"]; exists {
		return nil, storedErr
	}
	return c.bearerService, nil
}

// CapabilityService returns the capability mint/verify service.
func (c *Container) CapabilityService() (accessService.CapabilityService, error) {
	c.capabilityServiceInit.Do(func() {
		if err := c.loadSigningKeys(); err != nil {
			c.initErrors["capabilityService"] = err
			return
		}
		c.capabilityService = accessService.NewCapabilityService(c.capabilityKey)
	})
	if storedErr, exists := c.initErrors["capabilityService"]; exists {
		return nil, storedErr
	}
	return c.capabilityService, nil
}
