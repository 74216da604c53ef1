package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adenisiewicz/onapsdk-go/pkg/aai"
	"github.com/adenisiewicz/onapsdk-go/pkg/clamp"
	"github.com/adenisiewicz/onapsdk-go/pkg/config"
	"github.com/adenisiewicz/onapsdk-go/pkg/sdc"
	"github.com/adenisiewicz/onapsdk-go/pkg/so"
)

type app struct {
	settings *config.Settings
	logger   *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}
	var configFile string
	var verbose bool

	root := &cobra.Command{
		Use:          "onapctl",
		Short:        "Drive ONAP service onboarding, distribution and instantiation",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadFile(configFile)
			if err != nil {
				return err
			}
			a.settings = settings
			if verbose {
				a.logger, err = zap.NewDevelopment()
			} else {
				a.logger, err = zap.NewProduction()
			}
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "settings file (YAML)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newOnboardCommand(a))
	root.AddCommand(newDistributeCommand(a))
	root.AddCommand(newInstantiateCommand(a))
	root.AddCommand(newLoopCommand(a))
	return root
}

func newOnboardCommand(a *app) *cobra.Command {
	var vendorName, vspName, vfName, serviceName, packagePath string

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Onboard a vendor, VSP, VF and service into SDC",
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := os.ReadFile(packagePath)
			if err != nil {
				return fmt.Errorf("reading onboarding package: %w", err)
			}
			ctx := cmd.Context()
			client := sdc.NewClient(a.settings).WithLogger(a.logger)

			vendor := client.NewVendor(vendorName)
			if err := vendor.Onboard(ctx); err != nil {
				return fmt.Errorf("onboarding vendor: %w", err)
			}
			vsp := client.NewVsp(vspName, vendor)
			vsp.Package = pkg
			if err := vsp.Onboard(ctx); err != nil {
				return fmt.Errorf("onboarding VSP: %w", err)
			}
			vf := client.NewVf(vfName, vsp)
			if err := vf.Onboard(ctx); err != nil {
				return fmt.Errorf("onboarding VF: %w", err)
			}
			service := client.NewService(serviceName, vf)
			if err := service.Onboard(ctx); err != nil {
				return fmt.Errorf("onboarding service: %w", err)
			}
			a.logger.Info("service onboarded",
				zap.String("service", service.Name), zap.String("uuid", service.Identifier()))
			return nil
		},
	}
	cmd.Flags().StringVar(&vendorName, "vendor", "", "vendor name")
	cmd.Flags().StringVar(&vspName, "vsp", "", "VSP name")
	cmd.Flags().StringVar(&vfName, "vf", "", "VF name")
	cmd.Flags().StringVar(&serviceName, "service", "", "service name")
	cmd.Flags().StringVar(&packagePath, "package", "", "onboarding package zip")
	_ = cmd.MarkFlagRequired("package")
	return cmd
}

func findService(ctx context.Context, client *sdc.Client, name string) (*sdc.Service, error) {
	service := client.NewService(name)
	exists, err := service.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("service %s not found in SDC", name)
	}
	return service, nil
}

func newDistributeCommand(a *app) *cobra.Command {
	var serviceName string

	cmd := &cobra.Command{
		Use:   "distribute",
		Short: "Approve and distribute a certified service",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client := sdc.NewClient(a.settings).WithLogger(a.logger)
			service, err := findService(ctx, client, serviceName)
			if err != nil {
				return err
			}
			if err := service.ApproveDistribution(ctx); err != nil {
				return fmt.Errorf("approving distribution: %w", err)
			}
			if err := service.Distribute(ctx); err != nil {
				return fmt.Errorf("distributing service: %w", err)
			}
			distributed, err := service.Distributed(ctx)
			if err != nil {
				return err
			}
			a.logger.Info("distribution triggered",
				zap.String("service", service.Name), zap.Bool("all_components_done", distributed))
			return nil
		},
	}
	cmd.Flags().StringVar(&serviceName, "service", "", "service name")
	_ = cmd.MarkFlagRequired("service")
	return cmd
}

func newInstantiateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instantiate",
		Short: "Instantiate services and VNFs through SO",
	}
	cmd.AddCommand(newInstantiateServiceCommand(a))
	cmd.AddCommand(newInstantiateVnfCommand(a))
	return cmd
}

func newInstantiateServiceCommand(a *app) *cobra.Command {
	var serviceName, customerID, cloudOwner, cloudRegionID, tenantID string
	var owningEntityName, projectName, instanceName string

	cmd := &cobra.Command{
		Use:   "service",
		Short: "Instantiate a distributed service a'la carte",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sdcClient := sdc.NewClient(a.settings).WithLogger(a.logger)
			aaiClient := aai.NewClient(a.settings).WithLogger(a.logger)
			soClient := so.NewClient(a.settings).WithLogger(a.logger)

			service, err := findService(ctx, sdcClient, serviceName)
			if err != nil {
				return err
			}
			customer, err := aaiClient.CustomerByGlobalID(ctx, customerID)
			if err != nil {
				return fmt.Errorf("looking up customer: %w", err)
			}
			cloudRegion, err := aaiClient.CloudRegionByID(ctx, cloudOwner, cloudRegionID)
			if err != nil {
				return fmt.Errorf("looking up cloud region: %w", err)
			}
			tenant, err := cloudRegion.TenantByID(ctx, tenantID)
			if err != nil {
				return fmt.Errorf("looking up tenant: %w", err)
			}
			owningEntity, err := aaiClient.OwningEntityByName(ctx, owningEntityName)
			if err != nil {
				return fmt.Errorf("looking up owning entity: %w", err)
			}

			instantiation, err := soClient.InstantiateServiceAlaCarte(ctx, service,
				cloudRegion, tenant, customer, owningEntity, projectName, instanceName)
			if err != nil {
				return err
			}
			status, err := instantiation.WaitForFinish(ctx)
			if err != nil {
				return err
			}
			if status != so.StatusCompleted {
				return fmt.Errorf("service instantiation %s ended with status %s",
					instantiation.Name, status)
			}
			a.logger.Info("service instance created",
				zap.String("name", instantiation.Name),
				zap.String("instance_id", instantiation.InstanceID))
			return nil
		},
	}
	cmd.Flags().StringVar(&serviceName, "service", "", "SDC service name")
	cmd.Flags().StringVar(&customerID, "customer", "", "global customer id")
	cmd.Flags().StringVar(&cloudOwner, "cloud-owner", "", "cloud owner")
	cmd.Flags().StringVar(&cloudRegionID, "cloud-region", "", "cloud region id")
	cmd.Flags().StringVar(&tenantID, "tenant", "", "tenant id")
	cmd.Flags().StringVar(&owningEntityName, "owning-entity", "", "owning entity name")
	cmd.Flags().StringVar(&projectName, "project", "", "project name")
	cmd.Flags().StringVar(&instanceName, "name", "", "service instance name (generated when empty)")
	for _, flag := range []string{"service", "customer", "cloud-owner", "cloud-region", "tenant", "owning-entity", "project"} {
		_ = cmd.MarkFlagRequired(flag)
	}
	return cmd
}

func newInstantiateVnfCommand(a *app) *cobra.Command {
	var serviceName, customerID, serviceInstanceName, vnfName string
	var lineOfBusiness, platform, instanceName string

	cmd := &cobra.Command{
		Use:   "vnf",
		Short: "Add a VNF into a running service instance",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sdcClient := sdc.NewClient(a.settings).WithLogger(a.logger)
			aaiClient := aai.NewClient(a.settings).WithLogger(a.logger)
			soClient := so.NewClient(a.settings).WithLogger(a.logger)

			service, err := findService(ctx, sdcClient, serviceName)
			if err != nil {
				return err
			}
			if err := service.LoadToscaModel(ctx); err != nil {
				return fmt.Errorf("loading service TOSCA model: %w", err)
			}
			var vnf *sdc.Vnf
			for i := range service.Vnfs {
				if service.Vnfs[i].Name == vnfName || vnfName == "" {
					vnf = &service.Vnfs[i]
					break
				}
			}
			if vnf == nil {
				return fmt.Errorf("VNF %s not found in service %s", vnfName, serviceName)
			}

			customer, err := aaiClient.CustomerByGlobalID(ctx, customerID)
			if err != nil {
				return fmt.Errorf("looking up customer: %w", err)
			}
			subscription, err := customer.ServiceSubscription(ctx, service.Name)
			if err != nil {
				return fmt.Errorf("looking up service subscription: %w", err)
			}
			serviceInstance, err := subscription.ServiceInstanceByName(ctx, serviceInstanceName)
			if err != nil {
				return fmt.Errorf("looking up service instance: %w", err)
			}

			instantiation, err := soClient.InstantiateVnfAlaCarte(ctx, serviceInstance,
				service, *vnf, lineOfBusiness, platform, instanceName)
			if err != nil {
				return err
			}
			status, err := instantiation.WaitForFinish(ctx)
			if err != nil {
				return err
			}
			if status != so.StatusCompleted {
				return fmt.Errorf("VNF instantiation %s ended with status %s",
					instantiation.Name, status)
			}
			a.logger.Info("VNF instance created",
				zap.String("name", instantiation.Name),
				zap.String("instance_id", instantiation.InstanceID))
			return nil
		},
	}
	cmd.Flags().StringVar(&serviceName, "service", "", "SDC service name")
	cmd.Flags().StringVar(&customerID, "customer", "", "global customer id")
	cmd.Flags().StringVar(&serviceInstanceName, "instance", "", "service instance name")
	cmd.Flags().StringVar(&vnfName, "vnf", "", "VNF name from the service model (first when empty)")
	cmd.Flags().StringVar(&lineOfBusiness, "line-of-business", "", "line of business")
	cmd.Flags().StringVar(&platform, "platform", "", "platform")
	cmd.Flags().StringVar(&instanceName, "name", "", "VNF instance name (generated when empty)")
	for _, flag := range []string{"service", "customer", "instance", "line-of-business", "platform"} {
		_ = cmd.MarkFlagRequired(flag)
	}
	return cmd
}

func newLoopCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loop",
		Short: "Manage CLAMP control loops",
	}
	cmd.AddCommand(newLoopDeployCommand(a))
	return cmd
}

func newLoopDeployCommand(a *app) *cobra.Command {
	var serviceName, loopName, policyType, policyVersion string
	var frequencyLimit int

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Create a control loop from a service's template and deploy it",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sdcClient := sdc.NewClient(a.settings).WithLogger(a.logger)
			clampClient := clamp.NewClient(a.settings).WithLogger(a.logger)

			service, err := findService(ctx, sdcClient, serviceName)
			if err != nil {
				return err
			}
			template, err := clampClient.LoopTemplateName(ctx, service)
			if err != nil {
				return err
			}
			loop := clampClient.NewLoopInstance(template, loopName)
			if err := loop.Create(ctx); err != nil {
				return err
			}
			if err := loop.AddOperationalPolicy(ctx, policyType, policyVersion); err != nil {
				return err
			}
			if err := loop.UpdateMicroservicePolicy(ctx); err != nil {
				return err
			}
			if err := loop.UpdateOperationalPolicies(ctx, loop.FrequencyLimiterConfig(frequencyLimit)); err != nil {
				return err
			}
			if err := loop.Submit(ctx); err != nil {
				return err
			}
			if err := loop.DeployMicroserviceToDCAE(ctx); err != nil {
				return err
			}
			a.logger.Info("control loop deployed", zap.String("loop", loop.Name))
			return nil
		},
	}
	cmd.Flags().StringVar(&serviceName, "service", "", "SDC service name")
	cmd.Flags().StringVar(&loopName, "name", "", "loop instance name")
	cmd.Flags().StringVar(&policyType, "policy", "onap.policies.controlloop.Operational", "operational policy type")
	cmd.Flags().StringVar(&policyVersion, "policy-version", "1.0.0", "operational policy version")
	cmd.Flags().IntVar(&frequencyLimit, "frequency-limit", 1, "frequency limiter threshold")
	for _, flag := range []string{"service", "name"} {
		_ = cmd.MarkFlagRequired(flag)
	}
	return cmd
}
