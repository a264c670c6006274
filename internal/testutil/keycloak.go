package testutil

import (
	"testing"

	"github.com/erraggy/restdoc/sourcemodel"
)

// KeycloakModelYAML is a trimmed Keycloak admin API: nested factories,
// a resource mounted at two places, a factory cycle, form and multipart
// inputs, stale documentation and self-referential representations.
const KeycloakModelYAML = `
roots: [org.keycloak.services.resources.admin.RealmsAdminResource]
classes:
  - name: org.keycloak.services.resources.admin.RealmsAdminResource
    path: /admin/realms
    methods:
      - name: getRealms
        verb: GET
        returns: Stream<org.keycloak.representations.idm.RealmRepresentation>
        doc:
          summary: Get accessible realms
      - name: getRealmAdmin
        path: "{realm}"
        returns: org.keycloak.services.resources.admin.RealmAdminResource
        params:
          - {name: name, binding: realm, type: String, source: path}
        doc:
          params:
            - {name: realm, text: realm name (not id!)}

  - name: org.keycloak.services.resources.admin.RealmAdminResource
    methods:
      - name: getRealm
        verb: GET
        returns: org.keycloak.representations.idm.RealmRepresentation
        doc:
          summary: Get the top-level representation of the realm
      - name: updateRealm
        verb: PUT
        consumes: [application/json]
        returns: Response
        params:
          - {name: rep, type: org.keycloak.representations.idm.RealmRepresentation}
      - name: users
        path: users
        returns: org.keycloak.services.resources.admin.UsersResource
      - name: getGroups
        path: groups
        returns: org.keycloak.services.resources.admin.GroupsResource
      - name: getClients
        path: clients
        returns: org.keycloak.services.resources.admin.ClientsResource
      - name: getSession
        path: sessions/{session}
        returns: Object
        params:
          - {name: session, type: String, source: path}

  - name: org.keycloak.services.resources.admin.UsersResource
    methods:
      - name: getUsers
        verb: GET
        produces: [application/json]
        returns: Stream<org.keycloak.representations.idm.UserRepresentation>
        params:
          - {name: search, type: String, source: query}
          - {name: firstResult, binding: first, type: Integer, source: query}
          - {name: maxResults, binding: max, type: Integer, source: query}
          - {name: briefRepresentation, type: Boolean, source: query, default: "false"}
          - {name: exact, type: boolean, source: query}
          - {name: session, type: KeycloakSession, source: context}
        doc:
          summary: Get users
          description: Returns a stream of users, filtered according to query parameters.
          params:
            - {name: search, text: "A String contained in username, first or last name, or email"}
            - {name: firstResultUga, text: Pagination offset}
            - {name: max, text: Maximum results size (defaults to 100)}
      - name: createUser
        verb: POST
        consumes: [application/json]
        returns: Response
        params:
          - {name: rep, type: org.keycloak.representations.idm.UserRepresentation}
        doc:
          summary: Create a new user
          description: Username must be unique.
          params:
            - {name: rep, text: new user}
      - name: user
        path: "{user-id}"
        returns: org.keycloak.services.resources.admin.UserResource
        params:
          - {name: id, binding: user-id, type: String, source: path}
        doc:
          params:
            - {name: user-id, text: User id}

  - name: org.keycloak.services.resources.admin.UserResource
    methods:
      - name: getUser
        verb: GET
        returns: org.keycloak.representations.idm.UserRepresentation
        params:
          - {name: userProfileMetadata, type: boolean, source: query, default: "false"}
        doc:
          summary: Get representation of the user
      - name: updateUser
        verb: PUT
        consumes: [application/json]
        returns: Response
        params:
          - {name: rep, type: org.keycloak.representations.idm.UserRepresentation}
      - name: deleteUser
        verb: DELETE
        returns: Response
      - name: getRoleMappings
        path: role-mappings
        returns: org.keycloak.services.resources.admin.RoleMapperResource
      - name: resetPassword
        verb: PUT
        path: reset-password
        consumes: [application/json]
        params:
          - {name: cred, type: org.keycloak.representations.idm.CredentialRepresentation}

  - name: org.keycloak.services.resources.admin.RoleMapperResource
    methods:
      - name: getRoleMappings
        verb: GET
        returns: org.keycloak.representations.idm.MappingsRepresentation
        doc:
          summary: Get role mappings
      - name: addRealmRoleMappings
        verb: POST
        path: realm
        consumes: [application/json]
        params:
          - {name: roles, type: "List<org.keycloak.representations.idm.RoleRepresentation>"}

  - name: org.keycloak.services.resources.admin.GroupsResource
    methods:
      - name: getGroups
        verb: GET
        returns: Stream<org.keycloak.representations.idm.GroupRepresentation>
      - name: getGroupById
        path: "{group-id}"
        returns: org.keycloak.services.resources.admin.GroupResource
        params:
          - {name: id, binding: group-id, type: String, source: path}

  - name: org.keycloak.services.resources.admin.GroupResource
    methods:
      - name: getGroup
        verb: GET
        returns: org.keycloak.representations.idm.GroupRepresentation
      - name: getRoleMappings
        path: role-mappings
        returns: org.keycloak.services.resources.admin.RoleMapperResource
      - name: getSubGroups
        path: children
        returns: org.keycloak.services.resources.admin.GroupsResource

  - name: org.keycloak.services.resources.admin.ClientsResource
    methods:
      - name: getClients
        verb: GET
        returns: Stream<org.keycloak.representations.idm.ClientRepresentation>
        params:
          - {name: clientId, type: String, source: query}
      - name: importClient
        verb: POST
        path: import
        consumes: [multipart/form-data]
        returns: org.keycloak.representations.idm.ClientRepresentation
        params:
          - {name: session, type: KeycloakSession, source: context}
      - name: getInstallation
        verb: GET
        path: "{id}/installation/providers/{providerId}"
        produces: [application/octet-stream]
        returns: byte[]
        params:
          - {name: id, type: String, source: path}
          - {name: providerId, type: String, source: path}
      - name: authenticate
        verb: POST
        path: "{id}/token"
        consumes: [application/x-www-form-urlencoded]
        returns: Map<String, Object>
        params:
          - {name: id, type: String, source: path}
          - {name: grant_type, type: String, source: form}
          - {name: scope, type: String, source: form, nullable: true}

  - name: org.keycloak.representations.idm.AbstractRepresentation
    fields:
      - {name: id, type: String, visibility: protected}
    methods:
      - {name: getId, returns: String}

  - name: org.keycloak.representations.idm.RealmRepresentation
    extends: org.keycloak.representations.idm.AbstractRepresentation
    fields:
      - {name: realm, type: String, visibility: protected}
      - {name: enabled, type: Boolean, visibility: protected}
      - {name: accessTokenLifespan, type: Integer, visibility: protected}
      - {name: sslRequired, type: org.keycloak.common.enums.SslRequired, visibility: protected}
      - {name: passwordPolicy, type: String, visibility: protected, deprecated: true}
    methods:
      - {name: getRealm, returns: String}
      - {name: isEnabled, returns: Boolean}
      - {name: getAccessTokenLifespan, returns: Integer}
      - {name: getSslRequired, returns: org.keycloak.common.enums.SslRequired}
      - {name: getPasswordPolicy, returns: String, deprecated: true}

  - name: org.keycloak.common.enums.SslRequired
    kind: enum
    constants: [ALL, EXTERNAL, NONE]

  - name: org.keycloak.representations.idm.UserRepresentation
    extends: org.keycloak.representations.idm.AbstractRepresentation
    fields:
      - {name: username, type: String, visibility: protected}
      - {name: enabled, type: Boolean, visibility: protected}
      - {name: emailVerified, type: boolean, visibility: protected}
      - {name: createdTimestamp, type: Long, visibility: protected}
      - {name: attributes, type: "Map<String, List<String>>", visibility: protected}
      - {name: credentials, type: List<org.keycloak.representations.idm.CredentialRepresentation>, visibility: protected}
      - {name: realmRoles, type: Set<String>, visibility: protected}
      - {name: access, type: "Map<String, Boolean>", visibility: protected}
      - {name: secret, type: String, visibility: protected, excluded: true}
      - {name: federationLink, type: String, visibility: protected, deprecated: true}
    methods:
      - {name: getUsername, returns: String}
      - {name: isEnabled, returns: Boolean}
      - {name: isEmailVerified, returns: boolean}
      - {name: getCreatedTimestamp, returns: Long}
      - {name: getAttributes, returns: "Map<String, List<String>>"}
      - {name: getCredentials, returns: List<org.keycloak.representations.idm.CredentialRepresentation>}
      - {name: getRealmRoles, returns: Set<String>}
      - {name: getAccess, returns: "Map<String, Boolean>"}
      - {name: getSecret, returns: String}
      - {name: getFederationLink, returns: String}
      - {name: isInternal, returns: boolean, visibility: private}
      - {name: toString, returns: String}

  - name: org.keycloak.representations.idm.CredentialRepresentation
    fields:
      - {name: type, type: String, visibility: public}
      - {name: value, type: String, visibility: public}
      - {name: temporary, type: Boolean, visibility: public}

  - name: org.keycloak.representations.idm.GroupRepresentation
    fields:
      - {name: id, type: String, visibility: protected}
      - {name: name, type: String, visibility: protected}
      - {name: subGroups, type: List<org.keycloak.representations.idm.GroupRepresentation>, visibility: protected}
      - {name: parent, type: org.keycloak.representations.idm.GroupRepresentation, visibility: protected}
    methods:
      - {name: getId, returns: String}
      - {name: getName, returns: String}
      - {name: getSubGroups, returns: List<org.keycloak.representations.idm.GroupRepresentation>}
      - {name: getParent, returns: org.keycloak.representations.idm.GroupRepresentation}

  - name: org.keycloak.representations.idm.RoleRepresentation
    fields:
      - {name: name, type: String, visibility: protected}
      - {name: composite, type: boolean, visibility: protected}
    methods:
      - {name: getName, returns: String}
      - {name: isComposite, returns: boolean}

  - name: org.keycloak.representations.idm.MappingsRepresentation
    fields:
      - {name: realmMappings, type: List<org.keycloak.representations.idm.RoleRepresentation>, visibility: protected}
      - {name: clientMappings, type: "Map<String, org.keycloak.representations.idm.ClientMappingsRepresentation>", visibility: protected}
    methods:
      - {name: getRealmMappings, returns: List<org.keycloak.representations.idm.RoleRepresentation>}
      - {name: getClientMappings, returns: "Map<String, org.keycloak.representations.idm.ClientMappingsRepresentation>"}

  - name: org.keycloak.representations.idm.ClientRepresentation
    fields:
      - {name: clientId, type: String, visibility: protected}
      - {name: redirectUris, type: List<String>, visibility: protected}
    methods:
      - {name: getClientId, returns: String}
      - {name: getRedirectUris, returns: List<String>}
`

// KeycloakModel parses KeycloakModelYAML.
func KeycloakModel(t testing.TB) *sourcemodel.Model {
	t.Helper()
	return ParseModel(t, KeycloakModelYAML)
}
