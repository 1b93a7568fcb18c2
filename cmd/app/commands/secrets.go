package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	secretsDomain "github.com/allisson/secretstash/internal/secrets/domain"
	"github.com/allisson/secretstash/internal/secrets/http/dto"
	secretsUseCase "github.com/allisson/secretstash/internal/secrets/usecase"
)

// RunSecretsList prints the owner's secrets, with values when includeValues is set.
func RunSecretsList(
	ctx context.Context,
	secretUseCase secretsUseCase.SecretUseCase,
	w io.Writer,
	ownerID string,
	includeValues bool,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	secrets, err := secretUseCase.List(ctx, ownerID, includeValues)
	if err != nil {
		return fmt.Errorf("failed to list secrets: %w", err)
	}

	if format == FormatJSON {
		return writeJSON(w, dto.MapSecretsToListResponse(secrets))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if includeValues {
		_, _ = fmt.Fprintln(tw, "NAME\tVERSION\tCREATED AT\tVALUE")
	} else {
		_, _ = fmt.Fprintln(tw, "NAME\tVERSION\tCREATED AT\tUPDATED AT\tLAST ACCESSED")
	}
	for _, secret := range secrets {
		writeSecretRow(tw, secret)
	}
	return tw.Flush()
}

// RunSecretsGet prints a single secret. With includeValue the access time is recorded.
func RunSecretsGet(
	ctx context.Context,
	secretUseCase secretsUseCase.SecretUseCase,
	w io.Writer,
	ownerID, name string,
	includeValue bool,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	secret, err := secretUseCase.Get(ctx, ownerID, name, includeValue)
	if err != nil {
		return fmt.Errorf("failed to get secret: %w", err)
	}

	if format == FormatJSON {
		return writeJSON(w, dto.MapSecretToResponse(secret))
	}

	// A bare value keeps the output usable in shell substitution.
	if withValue, ok := secret.(*secretsDomain.SecretWithValue); ok {
		_, err := fmt.Fprintln(w, withValue.Value)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tVERSION\tCREATED AT\tUPDATED AT\tLAST ACCESSED")
	writeSecretRow(tw, secret)
	return tw.Flush()
}

// RunSecretsPut creates or updates a secret. An empty value is read from streams.Reader,
// with a single trailing newline removed.
func RunSecretsPut(
	ctx context.Context,
	secretUseCase secretsUseCase.SecretUseCase,
	streams IOTuple,
	ownerID, name, value string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if value == "" && streams.Reader != nil {
		var err error
		value, err = readValue(streams.Reader)
		if err != nil {
			return err
		}
	}

	metadata, err := secretUseCase.Upsert(ctx, ownerID, name, value)
	if err != nil {
		return fmt.Errorf("failed to store secret: %w", err)
	}

	if format == FormatJSON {
		return writeJSON(streams.Writer, dto.MapMetadataToResponse(metadata))
	}

	_, err = fmt.Fprintf(streams.Writer, "Secret %q stored (version %d)\n", metadata.Name, metadata.Version)
	return err
}

// RunSecretsDelete removes a secret. A missing secret is reported, not treated as a failure.
func RunSecretsDelete(
	ctx context.Context,
	secretUseCase secretsUseCase.SecretUseCase,
	w io.Writer,
	ownerID, name string,
) error {
	deleted, err := secretUseCase.Delete(ctx, ownerID, name)
	if err != nil {
		return fmt.Errorf("failed to delete secret: %w", err)
	}

	if !deleted {
		_, err = fmt.Fprintf(w, "Secret %q not found\n", name)
		return err
	}

	_, err = fmt.Fprintf(w, "Secret %q deleted\n", name)
	return err
}

func readValue(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read secret value: %w", err)
	}

	value := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(value, "\r"), nil
}

func writeSecretRow(w io.Writer, secret secretsDomain.Secret) {
	switch s := secret.(type) {
	case *secretsDomain.SecretWithValue:
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", s.Name, s.Version, s.CreatedAt.Format(time.RFC3339), s.Value)
	case *secretsDomain.SecretMetadata:
		lastAccessed := "-"
		if s.LastAccessed != nil {
			lastAccessed = s.LastAccessed.Format(time.RFC3339)
		}
		_, _ = fmt.Fprintf(
			w,
			"%s\t%d\t%s\t%s\t%s\n",
			s.Name,
			s.Version,
			s.CreatedAt.Format(time.RFC3339),
			s.UpdatedAt.Format(time.RFC3339),
			lastAccessed,
		)
	}
}
