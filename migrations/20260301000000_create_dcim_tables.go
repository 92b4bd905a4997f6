package migrations

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(upCreateDcimTables, downCreateDcimTables)
}

// 创建机柜管理的基础表
func upCreateDcimTables(tx *sql.Tx) error {
	statements := []string{
		`CREATE TABLE site (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			created_at DATETIME,
			updated_at DATETIME,
			name VARCHAR(100) NOT NULL COMMENT '站点名称',
			slug VARCHAR(100) COMMENT '标识符',
			region VARCHAR(100) COMMENT '所属区域',
			status VARCHAR(50) COMMENT '状态',
			UNIQUE KEY uk_site_name (name),
			UNIQUE KEY uk_site_slug (slug)
		);`,
		`CREATE TABLE location (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			created_at DATETIME,
			updated_at DATETIME,
			site_id BIGINT NOT NULL COMMENT '所属站点ID',
			parent_id BIGINT COMMENT '上级位置ID，0表示顶级',
			name VARCHAR(100) NOT NULL COMMENT '位置名称',
			slug VARCHAR(100) COMMENT '标识符',
			facility VARCHAR(100) COMMENT '机房设施编号',
			KEY idx_location_site (site_id),
			KEY idx_location_parent (parent_id)
		);`,
		`CREATE TABLE rack_type (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			created_at DATETIME,
			updated_at DATETIME,
			manufacturer VARCHAR(100) NOT NULL COMMENT '厂商',
			model VARCHAR(100) NOT NULL COMMENT '型号',
			slug VARCHAR(100) NOT NULL COMMENT '标识符',
			description VARCHAR(200) COMMENT '描述',
			form_factor VARCHAR(50) COMMENT '机柜形态',
			width INT DEFAULT 19 COMMENT '轨间宽度（英寸）',
			u_height INT DEFAULT 42 COMMENT '高度（U）',
			starting_unit INT DEFAULT 1 COMMENT '起始单元编号',
			desc_units TINYINT(1) DEFAULT 0 COMMENT '单元编号是否自上而下递增',
			outer_width INT COMMENT '外部宽度',
			outer_depth INT COMMENT '外部深度',
			outer_unit VARCHAR(10) COMMENT '外部尺寸单位',
			mounting_depth INT COMMENT '安装深度（毫米）',
			weight DOUBLE COMMENT '自重',
			weight_unit VARCHAR(10) COMMENT '重量单位',
			max_weight INT COMMENT '最大承重',
			UNIQUE KEY uk_rack_type_slug (slug)
		);`,
		`CREATE TABLE rack_role (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			created_at DATETIME,
			updated_at DATETIME,
			name VARCHAR(100) NOT NULL COMMENT '角色名称',
			slug VARCHAR(100) COMMENT '标识符',
			color VARCHAR(6) DEFAULT '9e9e9e' COMMENT '显示颜色',
			description VARCHAR(200) COMMENT '描述',
			UNIQUE KEY uk_rack_role_name (name)
		);`,
		`CREATE TABLE rack (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			created_at DATETIME,
			updated_at DATETIME,
			name VARCHAR(100) NOT NULL COMMENT '机柜名称',
			facility_id VARCHAR(50) COMMENT '机房本地编号',
			site_id BIGINT NOT NULL COMMENT '所属站点ID',
			location_id BIGINT COMMENT '所属位置ID，0表示未指定',
			rack_type_id BIGINT COMMENT '机柜型号ID，0表示未关联',
			role_id BIGINT COMMENT '功能角色ID',
			status VARCHAR(50) DEFAULT 'active' COMMENT '状态',
			serial VARCHAR(50) COMMENT '序列号',
			asset_tag VARCHAR(50) COMMENT '资产标签',
			airflow VARCHAR(50) COMMENT '风道方向',
			comments TEXT COMMENT '备注',
			form_factor VARCHAR(50) COMMENT '机柜形态',
			width INT DEFAULT 19 COMMENT '轨间宽度（英寸）',
			u_height INT DEFAULT 42 COMMENT '高度（U）',
			starting_unit INT DEFAULT 1 COMMENT '起始单元编号',
			desc_units TINYINT(1) DEFAULT 0 COMMENT '单元编号是否自上而下递增',
			outer_width INT COMMENT '外部宽度',
			outer_depth INT COMMENT '外部深度',
			outer_unit VARCHAR(10) COMMENT '外部尺寸单位',
			mounting_depth INT COMMENT '安装深度（毫米）',
			weight DOUBLE COMMENT '自重',
			weight_unit VARCHAR(10) COMMENT '重量单位',
			max_weight INT COMMENT '最大承重',
			KEY idx_rack_site (site_id),
			KEY idx_rack_location (location_id),
			KEY idx_rack_type (rack_type_id),
			KEY idx_rack_role (role_id)
		);`,
		`CREATE TABLE rack_reservation (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			created_at DATETIME,
			updated_at DATETIME,
			rack_id BIGINT NOT NULL COMMENT '所属机柜ID',
			units TEXT NOT NULL COMMENT '预留单元编号（JSON数组）',
			user_name VARCHAR(100) COMMENT '预留人',
			description VARCHAR(200) NOT NULL COMMENT '预留说明',
			KEY idx_reservation_rack (rack_id)
		);`,
		`CREATE TABLE device (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			created_at DATETIME,
			updated_at DATETIME,
			name VARCHAR(100) NOT NULL COMMENT '设备名称',
			rack_id BIGINT COMMENT '所属机柜ID',
			position DOUBLE COMMENT '底部单元位置',
			u_height DOUBLE DEFAULT 1 COMMENT '设备高度（U）',
			face VARCHAR(10) COMMENT '安装面',
			is_full_depth TINYINT(1) DEFAULT 0 COMMENT '是否全深',
			exclude_from_utilization TINYINT(1) DEFAULT 0 COMMENT '是否不计入容量占用',
			manufacturer VARCHAR(100) COMMENT '厂商',
			model VARCHAR(100) COMMENT '型号',
			serial VARCHAR(50) COMMENT '序列号',
			asset_tag VARCHAR(50) COMMENT '资产标签',
			role VARCHAR(100) COMMENT '设备角色',
			status VARCHAR(50) COMMENT '状态',
			KEY idx_device_rack (rack_id)
		);`,
		`CREATE TABLE power_feed (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			created_at DATETIME,
			updated_at DATETIME,
			rack_id BIGINT NOT NULL COMMENT '所属机柜ID',
			name VARCHAR(100) NOT NULL COMMENT '馈线名称',
			status VARCHAR(50) DEFAULT 'active' COMMENT '状态',
			supply VARCHAR(50) COMMENT '供电相式',
			voltage INT DEFAULT 220 COMMENT '电压（V）',
			amperage INT DEFAULT 16 COMMENT '电流（A）',
			max_utilization INT DEFAULT 80 COMMENT '最大利用率（%）',
			available_power INT COMMENT '可用功率（VA）',
			KEY idx_power_feed_rack (rack_id)
		);`,
		`CREATE TABLE power_port (
			id BIGINT UNSIGNED PRIMARY KEY AUTO_INCREMENT,
			created_at DATETIME,
			updated_at DATETIME,
			device_id BIGINT NOT NULL COMMENT '所属设备ID',
			name VARCHAR(100) NOT NULL COMMENT '端口名称',
			power_feed_id BIGINT COMMENT '对端馈线ID，0表示未连接',
			allocated_draw INT COMMENT '分配功耗（VA）',
			maximum_draw INT COMMENT '峰值功耗（VA）',
			KEY idx_power_port_device (device_id),
			KEY idx_power_port_feed (power_feed_id)
		);`,
	}

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func downCreateDcimTables(tx *sql.Tx) error {
	tables := []string{
		"power_port", "power_feed", "device", "rack_reservation",
		"rack", "rack_role", "rack_type", "location", "site",
	}
	for _, table := range tables {
		if _, err := tx.Exec("DROP TABLE IF EXISTS " + table + ";"); err != nil {
			return err
		}
	}
	return nil
}
