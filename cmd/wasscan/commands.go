// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package main

import (
	"fmt"
	"os"

	"github.com/lazycatapps/wasscan/pkg/sc"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// addScanFlags registers the flags shared by create and edit.
func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "Scan definition file (YAML or JSON)")
	cmd.Flags().String("name", "", "Scan name (overrides the file)")
	cmd.Flags().String("description", "", "Scan description (overrides the file)")
	cmd.Flags().Int("repository-id", 0, "Repository id (overrides the file)")
}

// loadScanRequest reads the --file definition and applies flag overrides.
func loadScanRequest(cmd *cobra.Command) (*sc.WasScanRequest, error) {
	fields := map[string]interface{}{}

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if fields == nil {
			fields = map[string]interface{}{}
		}
	}

	if cmd.Flags().Changed("name") {
		fields["name"], _ = cmd.Flags().GetString("name")
	}
	if cmd.Flags().Changed("description") {
		fields["description"], _ = cmd.Flags().GetString("description")
	}
	if cmd.Flags().Changed("repository-id") {
		fields["repository_id"], _ = cmd.Flags().GetInt("repository-id")
	}

	return sc.ParseWasScanFields(fields)
}

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a WAS scan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadScanRequest(cmd)
			if err != nil {
				return err
			}
			client, err := newSecurityCenter(loadConfig())
			if err != nil {
				return err
			}
			out, err := client.WasScans.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	addScanFlags(cmd)
	return cmd
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List WAS scans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, _ := cmd.Flags().GetStringSlice("fields")
			client, err := newSecurityCenter(loadConfig())
			if err != nil {
				return err
			}
			out, err := client.WasScans.List(cmd.Context(), fields)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringSlice("fields", nil, "Attributes to return (e.g., id,name)")
	return cmd
}

func newDetailsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "details <id>",
		Short: "Show one WAS scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, _ := cmd.Flags().GetStringSlice("fields")
			client, err := newSecurityCenter(loadConfig())
			if err != nil {
				return err
			}
			out, err := client.WasScans.Details(cmd.Context(), args[0], fields)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringSlice("fields", nil, "Attributes to return (e.g., id,name)")
	return cmd
}

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a WAS scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadScanRequest(cmd)
			if err != nil {
				return err
			}
			client, err := newSecurityCenter(loadConfig())
			if err != nil {
				return err
			}
			out, err := client.WasScans.Edit(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	addScanFlags(cmd)
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a WAS scan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newSecurityCenter(loadConfig())
			if err != nil {
				return err
			}
			out, err := client.WasScans.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

// copyRequest builds a CopyRequest from the copy command's flags.
func copyRequest(cmd *cobra.Command) sc.CopyRequest {
	var req sc.CopyRequest
	req.Name, _ = cmd.Flags().GetString("name")
	if cmd.Flags().Changed("id") {
		id, _ := cmd.Flags().GetInt("id")
		req.ID = &id
	}
	if cmd.Flags().Changed("uuid") {
		uuid, _ := cmd.Flags().GetString("uuid")
		req.UUID = &uuid
	}
	return req
}

func newCopyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy a WAS scan",
		Long:  "Copy the scan selected by exactly one of --id or --uuid under a new --name.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newSecurityCenter(loadConfig())
			if err != nil {
				return err
			}
			out, err := client.WasScans.Copy(cmd.Context(), copyRequest(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().Int("id", 0, "Id of the scan to copy")
	cmd.Flags().String("uuid", "", "UUID of the scan to copy")
	cmd.Flags().String("name", "", "Name of the copy")
	return cmd
}
