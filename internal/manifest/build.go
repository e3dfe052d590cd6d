package manifest

// Fixed credentials that are not derived from the common password.
const (
	defaultToken        = "TOKEN"
	defaultTokenSecret  = "TOKEN_SECRET"
	defaultClientSecret = "CLIENT_SECRET"
	defaultPostgresPort = 2544
)

// CoreTemplates are the job templates co-located on the core job, in start order.
var CoreTemplates = []string{
	"postgres",
	"nats",
	"router",
	"health_manager",
	"cloud_controller",
	"acm",
	"serialization_data_server",
	"stager",
	"uaa",
	"vcap_redis",
}

// BaseParams are the resolved inputs of the core deployment manifest.
type BaseParams struct {
	DeploymentName string
	DirectorUUID   string

	// BoshProvider and SystemName are unused by BaseManifest: cloud
	// properties arrive already mapped and the name arrives as DeploymentName.
	BoshProvider string
	SystemName   string

	ReleaseName          string
	ReleaseVersion       string
	StemcellName         string
	StemcellVersion      string
	CoreCloudProperties  CloudProperties
	CoreIP               string
	RootDNS              string
	AdminEmails          []string
	CommonPassword       string
	CommonPersistentDisk int
	SecurityGroup        string
}

// BaseManifest builds the single-node core deployment: every service is
// co-located on the "core" job in the "core" resource pool. Each call returns
// a new tree that shares nothing with p or with earlier results.
func BaseManifest(p BaseParams) *Document {
	return &Document{
		Name:         p.DeploymentName,
		DirectorUUID: p.DirectorUUID,
		Release:      Release{Name: p.ReleaseName, Version: p.ReleaseVersion},
		Compilation: Compilation{
			Workers:             10,
			Network:             DefaultNetwork,
			ReuseCompilationVMs: true,
			CloudProperties:     CloudProperties{"instance_type": "m1.medium"},
		},
		Update: Update{
			Canaries:        1,
			CanaryWatchTime: "30000-150000",
			UpdateWatchTime: "30000-150000",
			MaxInFlight:     4,
			MaxErrors:       1,
		},
		Networks: []Network{
			{
				Name:            DefaultNetwork,
				Type:            "dynamic",
				CloudProperties: CloudProperties{"security_groups": []string{p.SecurityGroup}},
			},
			{
				Name:            VIPNetwork,
				Type:            "vip",
				CloudProperties: CloudProperties{"security_groups": []string{p.SecurityGroup}},
			},
		},
		ResourcePools: []ResourcePool{
			{
				Name:            CoreName,
				Network:         DefaultNetwork,
				Size:            1,
				Stemcell:        Stemcell{Name: p.StemcellName, Version: p.StemcellVersion},
				CloudProperties: copyCloudProperties(p.CoreCloudProperties),
				PersistentDisk:  p.CommonPersistentDisk,
			},
		},
		Jobs: []Job{
			{
				Name:         CoreName,
				Template:     append([]string(nil), CoreTemplates...),
				Instances:    1,
				ResourcePool: CoreName,
				Networks: []JobNetwork{
					{Name: DefaultNetwork, Default: []string{"dns", "gateway"}},
					{Name: VIPNetwork, StaticIPs: []string{p.CoreIP}},
				},
				PersistentDisk: p.CommonPersistentDisk,
			},
		},
		Properties: baseProperties(p),
	}
}

func baseProperties(p BaseParams) Properties {
	ip := p.CoreIP
	password := p.CommonPassword

	return Properties{
		"domain":   p.RootDNS,
		"env":      nil,
		"networks": map[string]any{"apps": DefaultNetwork, "management": DefaultNetwork},
		"router": map[string]any{
			"client_inactivity_timeout": 600,
			"app_inactivity_timeout":    600,
			"local_route":               ip,
			"status": map[string]any{
				"port":     8080,
				"user":     "router",
				"password": password,
			},
		},
		"nats": map[string]any{
			"user":     "nats",
			"password": password,
			"address":  ip,
			"port":     4222,
		},
		"db": "ccdb",
		"ccdb": map[string]any{
			"template": "postgres",
			"address":  ip,
			"port":     defaultPostgresPort,
			"databases": []any{
				map[string]any{"tag": "cc", "name": "appcloud"},
				map[string]any{"tag": "acm", "name": "acm"},
				map[string]any{"tag": "uaa", "name": "uaa"},
			},
			"roles": []any{
				map[string]any{"name": "root", "password": password, "tag": "admin"},
				map[string]any{"name": "acm", "password": password, "tag": "acm"},
				map[string]any{"name": "uaa", "password": password, "tag": "uaa"},
			},
		},
		"cc": map[string]any{
			"description":              "Cloud Foundry",
			"srv_api_uri":              "http://api." + p.RootDNS,
			"password":                 password,
			"token":                    defaultToken,
			"allow_debug":              true,
			"allow_registration":       true,
			"admins":                   append([]string(nil), p.AdminEmails...),
			"admin_account_capacity":   accountCapacity(),
			"default_account_capacity": accountCapacity(),
			"new_stager_percent":       100,
			"staging_upload_user":      "vcap",
			"staging_upload_password":  password,
			"uaa": map[string]any{
				"enabled":                     true,
				"resource_id":                 "cloud_controller",
				"token_creation_email_filter": []string{""},
			},
			"service_extension": map[string]any{
				"service_lifecycle": map[string]any{"max_upload_size": 5},
			},
			"use_nginx": false,
		},
		"mysql_gateway": map[string]any{
			"ip_route":           ip,
			"token":              defaultToken,
			"supported_versions": []string{"5.1"},
			"version_aliases":    map[string]any{"current": "5.1"},
		},
		"mysql_node": map[string]any{
			"ip_route":           ip,
			"available_storage":  2048,
			"password":           password,
			"max_db_size":        256,
			"supported_versions": []string{"5.1"},
			"default_version":    "5.1",
		},
		"redis_gateway": map[string]any{
			"ip_route":           ip,
			"token":              defaultToken,
			"supported_versions": []string{"2.2"},
			"version_aliases":    map[string]any{"current": "2.2"},
		},
		"redis_node": map[string]any{
			"ip_route":           ip,
			"available_memory":   256,
			"supported_versions": []string{"2.2"},
			"default_version":    "2.2",
		},
		"mongodb_gateway": map[string]any{
			"ip_route":           ip,
			"token":              defaultToken,
			"supported_versions": []string{"1.8", "2.0"},
			"version_aliases":    map[string]any{"current": "2.0", "deprecated": "1.8"},
		},
		"mongodb_node": map[string]any{
			"ip_route":           ip,
			"available_memory":   256,
			"supported_versions": []string{"1.8", "2.0"},
			"default_version":    "1.8",
		},
		"postgresql_gateway": map[string]any{
			"ip_route":           ip,
			"admin_user":         "psql_admin",
			"admin_passwd_hash":  nil,
			"token":              defaultToken,
			"supported_versions": []string{"9.0"},
			"version_aliases":    map[string]any{"current": "9.0"},
		},
		"postgresql_node": map[string]any{
			"ip_route":           ip,
			"admin_user":         "psql_admin",
			"admin_passwd_hash":  nil,
			"available_storage":  2048,
			"max_db_size":        256,
			"max_long_tx":        30,
			"supported_versions": []string{"9.0"},
			"default_version":    "9.0",
		},
		"postgresql_server": map[string]any{
			"max_connections": 30,
			"listen_address":  "0.0.0.0",
		},
		"acm": map[string]any{
			"user":     "acm",
			"password": password,
		},
		"acmdb": map[string]any{
			"address": ip,
			"port":    defaultPostgresPort,
			"roles": []any{
				map[string]any{"tag": "admin", "name": "acm", "password": password},
			},
			"databases": []any{
				map[string]any{"tag": "acm", "name": "acm"},
			},
		},
		"serialization_data_server": map[string]any{
			"upload_token":            defaultToken,
			"use_nginx":               false,
			"upload_timeout":          10,
			"port":                    8090,
			"upload_file_expire_time": 600,
			"purge_expired_interval":  30,
		},
		"service_lifecycle": map[string]any{
			"download_url": ip,
			"mount_point":  "/var/vcap/service_lifecycle",
			"tmp_dir":      "/var/vcap/service_lifecycle/tmp_dir",
			"resque": map[string]any{
				"host":     ip,
				"port":     3456,
				"password": password,
			},
			"nfs_server": map[string]any{
				"address":    ip,
				"export_dir": "/cfsnapshot",
			},
			"serialization_data_server": []string{ip},
		},
		"stager": map[string]any{
			"max_staging_duration": 120,
			"max_active_tasks":     20,
			"queues":               []string{"staging"},
		},
		"uaa": map[string]any{
			"cc": map[string]any{
				"token_secret":  defaultTokenSecret,
				"client_secret": defaultClientSecret,
			},
			"admin": map[string]any{"client_secret": defaultClientSecret},
			"login": map[string]any{"client_secret": defaultClientSecret},
			"batch": map[string]any{
				"username": "uaa",
				"password": password,
			},
			"port":          8100,
			"catalina_opts": "-Xmx128m -Xms30m -XX:MaxPermSize=128m",
		},
		"uaadb": map[string]any{
			"address": ip,
			"port":    defaultPostgresPort,
			"roles": []any{
				map[string]any{"tag": "admin", "name": "uaa", "password": password},
			},
			"databases": []any{
				map[string]any{"tag": "uaa", "name": "uaa"},
			},
		},
		"vcap_redis": map[string]any{
			"address":   ip,
			"port":      3456,
			"password":  password,
			"maxmemory": 500000000,
		},
		"service_plans": servicePlans(),
		"dea":           map[string]any{"max_memory": 512},
	}
}

func accountCapacity() map[string]any {
	return map[string]any{
		"memory":   2048,
		"app_uris": 32,
		"services": 16,
		"apps":     16,
	}
}

func jobManagement(highWater int) map[string]any {
	return map[string]any{"high_water": highWater, "low_water": 100}
}

// servicePlans is the "free" tier of every bundled service.
func servicePlans() map[string]any {
	return map[string]any{
		"mysql": map[string]any{
			"free": map[string]any{
				"job_management": jobManagement(1400),
				"configuration": map[string]any{
					"allow_over_provisioning": true,
					"capacity":                200,
					"max_db_size":             128,
					"max_long_query":          3,
					"max_long_tx":             30,
					"max_clients":             20,
					"backup":                  map[string]any{"enable": true},
				},
			},
		},
		"postgresql": map[string]any{
			"free": map[string]any{
				"job_management": jobManagement(1400),
				"configuration": map[string]any{
					"capacity":       200,
					"max_db_size":    128,
					"max_long_query": 3,
					"max_long_tx":    30,
					"max_clients":    20,
					"backup":         map[string]any{"enable": true},
				},
			},
		},
		"mongodb": map[string]any{
			"free": map[string]any{
				"job_management": jobManagement(3000),
				"configuration": map[string]any{
					"allow_over_provisioning": true,
					"capacity":                200,
					"quota_files":             4,
					"max_clients":             500,
					"backup":                  map[string]any{"enable": true},
				},
			},
		},
		"rabbit": map[string]any{
			"free": map[string]any{
				"job_management": jobManagement(1400),
				"configuration": map[string]any{
					"max_memory_factor": 0.5,
					"max_clients":       512,
					"capacity":          200,
				},
			},
		},
		"redis": map[string]any{
			"free": map[string]any{
				"job_management": jobManagement(1400),
				"configuration": map[string]any{
					"capacity":    200,
					"max_memory":  16,
					"max_swap":    32,
					"max_clients": 500,
					"backup":      map[string]any{"enable": true},
				},
			},
		},
		"vblob": map[string]any{
			"free": map[string]any{
				"job_management": jobManagement(1400),
				"configuration":  map[string]any{"capacity": 200},
			},
		},
	}
}

func copyCloudProperties(cp CloudProperties) CloudProperties {
	if cp == nil {
		return CloudProperties{}
	}
	return CloudProperties(deepCopy(map[string]any(cp)).(map[string]any))
}
