// Package webplugin defines the collaborator interface a web-server
// configuration plugin would satisfy (the code that actually rewrites
// nginx/Apache-style config files and installs certificates into them).
// That rewriting logic is out of scope for this repository; what lives
// here is the small orchestration shape every such plugin must follow
// to use internal/reverter safely: register any files it is about to
// create, capture the current contents of any files it is about to
// edit, perform the mutation, then finalize the checkpoint on success
// or revert it on failure.
package webplugin

import (
	"context"
	"fmt"

	"github.com/fulcrumagent/reverter/internal/caclient"
	"github.com/fulcrumagent/reverter/internal/reverter"
)

// Plugin is the subset of a web-server integration an orchestrator
// needs: the set of config files a given domain's install touches, and
// the mutation itself.
type Plugin interface {
	// ConfigPaths returns the existing files DeployCertificate will
	// overwrite, and the files (if any) it will create from scratch.
	ConfigPaths(domain string) (edited []string, created []string)
	// DeployCertificate rewrites the plugin's config files to install
	// cert. Called only after the Reverter has captured the pre-edit
	// state named by ConfigPaths.
	DeployCertificate(ctx context.Context, domain string, cert *caclient.Certificate) error
}

// Install runs the full checkpoint-wrapped deployment: capture,
// mutate, and finalize-or-revert, per the orchestration contract the
// core Reverter expects of its callers. It requests the certificate
// from ca, wraps the plugin's edit in a permanent checkpoint, and rolls
// the edit back if either the request or the deployment fails.
func Install(ctx context.Context, r *reverter.Reverter, ca caclient.Client, p Plugin, domain string) error {
	edited, created := p.ConfigPaths(domain)

	if len(created) > 0 {
		if err := r.RegisterFileCreation(false, created...); err != nil {
			return fmt.Errorf("registering new config files: %w", err)
		}
	}
	if len(edited) > 0 {
		if err := r.AddToCheckpoint(edited, fmt.Sprintf("install certificate for %s", domain)); err != nil {
			return fmt.Errorf("capturing config files before edit: %w", err)
		}
	}

	cert, err := ca.RequestCertificate(ctx, domain)
	if err != nil {
		if revertErr := r.RecoveryRoutine(); revertErr != nil {
			return fmt.Errorf("requesting certificate: %w (revert also failed: %v)", err, revertErr)
		}
		return fmt.Errorf("requesting certificate: %w", err)
	}

	if err := p.DeployCertificate(ctx, domain, cert); err != nil {
		if revertErr := r.RecoveryRoutine(); revertErr != nil {
			return fmt.Errorf("deploying certificate: %w (revert also failed: %v)", err, revertErr)
		}
		return fmt.Errorf("deploying certificate: %w", err)
	}

	if err := r.FinalizeCheckpoint(fmt.Sprintf("install certificate for %s", domain)); err != nil {
		return fmt.Errorf("finalizing checkpoint: %w", err)
	}

	return nil
}
