package service

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type RackRoleServiceTestSuite struct {
	suite.Suite
	service *RackRoleService
	db      *gorm.DB
	sqlMock sqlmock.Sqlmock
}

func (s *RackRoleServiceTestSuite) SetupTest() {
	mockDb, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(s.T(), err)

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDb,
		SkipInitializeWithVersion: true,
	})
	s.db, err = gorm.Open(dialector, &gorm.Config{})
	assert.NoError(s.T(), err)
	s.sqlMock = mock

	s.service = NewRackRoleService(s.db)
}

func (s *RackRoleServiceTestSuite) TearDownTest() {
	assert.NoError(s.T(), s.sqlMock.ExpectationsWereMet())
}

func (s *RackRoleServiceTestSuite) TestListRackRoles() {
	rows := sqlmock.NewRows([]string{"id", "name", "slug", "color", "description"}).
		AddRow(1, "计算", "compute", "2196f3", "").
		AddRow(2, "网络", "network", "4caf50", "")
	s.sqlMock.ExpectQuery("SELECT \\* FROM `rack_role` ORDER BY name").WillReturnRows(rows)

	list, err := s.service.ListRackRoles(context.Background())
	assert.NoError(s.T(), err)
	assert.Len(s.T(), list, 2)
	assert.Equal(s.T(), "计算", list[0].Name)
	assert.Equal(s.T(), "network", list[1].Slug)
}

func (s *RackRoleServiceTestSuite) TestListRackRolesDBError() {
	s.sqlMock.ExpectQuery("SELECT \\* FROM `rack_role`").
		WillReturnError(errors.New("connection refused"))

	_, err := s.service.ListRackRoles(context.Background())
	assert.Error(s.T(), err)
	assert.Contains(s.T(), err.Error(), "failed to list rack roles")
}

func (s *RackRoleServiceTestSuite) TestGetRackRoleNotFound() {
	s.sqlMock.ExpectQuery("SELECT \\* FROM `rack_role` WHERE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "color", "description"}))

	_, err := s.service.GetRackRole(context.Background(), 42)
	assert.Error(s.T(), err)
	assert.True(s.T(), IsNotFound(err))
}

func (s *RackRoleServiceTestSuite) TestDeleteRackRoleDetachesRacks() {
	rows := sqlmock.NewRows([]string{"id", "name", "slug", "color", "description"}).
		AddRow(1, "计算", "compute", "2196f3", "")
	s.sqlMock.ExpectBegin()
	s.sqlMock.ExpectQuery("SELECT \\* FROM `rack_role` WHERE").WillReturnRows(rows)
	s.sqlMock.ExpectExec("UPDATE `rack`").WillReturnResult(sqlmock.NewResult(0, 2))
	s.sqlMock.ExpectExec("DELETE FROM `rack_role`").WillReturnResult(sqlmock.NewResult(0, 1))
	s.sqlMock.ExpectCommit()

	err := s.service.DeleteRackRole(context.Background(), 1)
	assert.NoError(s.T(), err)
}

func TestRackRoleServiceSuite(t *testing.T) {
	suite.Run(t, new(RackRoleServiceTestSuite))
}
